package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/jwei/taxfolio"
	"github.com/jwei/taxfolio/renderer"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	platform string
	year     string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show start/end-of-year holdings snapshots" }
func (*holdingsCmd) Usage() string {
	return `tpf holdings -platform <platform> [-year <year>]

  Recomputes the moving-average book for a platform and prints the
  start/end-of-year holdings snapshot of each year (or one year).
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.platform, "platform", "", "Platform whose holdings to show.")
	f.StringVar(&c.year, "year", "", "Single year to show. Defaults to all.")
}

func (c *holdingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.platform == "" {
		fmt.Fprintln(os.Stderr, "-platform is required")
		return subcommands.ExitUsageError
	}
	cfg, err := appConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	trades, err := readHistory(cfg.DataDir, c.platform)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	result := taxfolio.Compute(trades, taxfolio.MovingAverage)
	for _, yh := range result.Holdings {
		if c.year != "" && c.year != strconv.Itoa(yh.Year) {
			continue
		}
		printMarkdown(renderer.HoldingsMarkdown(yh))
	}
	return subcommands.ExitSuccess
}
