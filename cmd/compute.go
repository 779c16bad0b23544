package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/jwei/taxfolio"
	"github.com/jwei/taxfolio/renderer"
)

// computeCmd holds the flags for the 'compute' subcommand.
type computeCmd struct {
	platform string
	method   string
}

func (*computeCmd) Name() string     { return "compute" }
func (*computeCmd) Synopsis() string { return "compute per-year realized profit from trade history" }
func (*computeCmd) Usage() string {
	return `tpf compute [-platform <platform>] [-method <method>]

  Reads a platform's trade history file, folds it through the position book
  under the selected lot-matching method, and writes one profit file per
  calendar year (plus holdings snapshots for the moving_avg method).
  By default every configured platform is computed under both methods.
`
}

func (c *computeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.platform, "platform", "", "Platform to compute. Defaults to all configured platforms.")
	f.StringVar(&c.method, "method", "", "Lot-matching method (offset, moving_avg). Defaults to both.")
}

func (c *computeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	platforms := cfg.Platforms
	if c.platform != "" {
		platforms = []string{c.platform}
	}
	methods := []taxfolio.Method{taxfolio.AverageCostOffset, taxfolio.MovingAverage}
	if c.method != "" {
		m, err := taxfolio.ParseMethod(c.method)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing method: %v\n", err)
			return subcommands.ExitUsageError
		}
		methods = []taxfolio.Method{m}
	}

	for _, platform := range platforms {
		trades, err := readHistory(cfg.DataDir, platform)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, method := range methods {
			result := taxfolio.Compute(trades, method)
			if err := writeResult(cfg.DataDir, platform, result); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s %s results: %v\n", platform, method, err)
				return subcommands.ExitFailure
			}
			for _, yp := range result.Profits {
				printMarkdown(renderer.YearProfitMarkdown(platform, yp))
			}
		}
	}
	return subcommands.ExitSuccess
}

// writeResult persists one computation's per-year files. Offset years with
// no realized closing are skipped; moving-average years always write both
// files so the holdings continuity chain has no holes.
func writeResult(dir, platform string, result taxfolio.Result) error {
	for _, yp := range result.Profits {
		if result.Method == taxfolio.AverageCostOffset && len(yp.Rows) == 0 {
			continue
		}
		name := filepath.Join(dir, taxfolio.ProfitFileName(platform, result.Method, yp.Year))
		if err := writeFile(name, func(f *os.File) error {
			return taxfolio.EncodeProfits(f, yp.Rows)
		}); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", name)
	}
	for _, yh := range result.Holdings {
		name := filepath.Join(dir, taxfolio.HoldingsFileName(platform, yh.Year))
		if err := writeFile(name, func(f *os.File) error {
			return taxfolio.EncodeHoldings(f, yh)
		}); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", name)
	}
	return nil
}

func writeFile(name string, encode func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
