package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jwei/taxfolio"
	"github.com/jwei/taxfolio/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "aggregate all per-year profit files into one table" }
func (*reportCmd) Usage() string {
	return `tpf report

  Scans the data folder for per-year profit files of every platform and
  method, and prints the year by currency profit table, grouped by method
  and by summary kind.
`
}

func (*reportCmd) SetFlags(*flag.FlagSet) {}

func (*reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	entries, err := taxfolio.LoadSummaries(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading summaries: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "No profit files found in %q: run 'tpf compute' first.\n", cfg.DataDir)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReportMarkdown(taxfolio.BuildReport(entries)))
	return subcommands.ExitSuccess
}
