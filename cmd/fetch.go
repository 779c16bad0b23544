package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/subcommands"

	"github.com/jwei/taxfolio"
	"github.com/jwei/taxfolio/longbridge"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	start string
	end   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch filled orders from the Longbridge OpenAPI" }
func (*fetchCmd) Usage() string {
	return `tpf fetch [-s <date>] [-d <date>]

  Fetches the filled order history from the Longbridge OpenAPI and writes
  it as the platform's trade history file. Credentials are read from the
  LONGPORT_* environment variables. Requests are rate limited.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date (YYYY-MM-DD). Defaults to the configured fetch_start.")
	f.StringVar(&c.end, "d", "", "End date (YYYY-MM-DD). Defaults to today.")
}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.start == "" {
		c.start = cfg.FetchStart
	}
	start, err := time.Parse("2006-01-02", c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end := time.Now()
	if c.end != "" {
		end, err = time.Parse("2006-01-02", c.end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	lbCfg, err := longbridge.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	trades, err := longbridge.Fetch(ctx, lbCfg, start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching order history: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data folder: %v\n", err)
		return subcommands.ExitFailure
	}
	name := filepath.Join(cfg.DataDir, taxfolio.HistoryFileName("longbridge"))
	if err := writeFile(name, func(f *os.File) error {
		return taxfolio.EncodeHistory(f, trades)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Fetched %d trades into %s\n", len(trades), name)
	return subcommands.ExitSuccess
}
