package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jwei/taxfolio"
)

// mergeCmd holds the flags for the 'merge' subcommand.
type mergeCmd struct {
	platform string
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "merge raw brokerage export files into one history file" }
func (*mergeCmd) Usage() string {
	return `tpf merge -platform <platform>

  Merges every "<platform>_history_raw*.csv" file in the data folder into
  "<platform>_history.csv", removing duplicated fills and sorting by
  execution time. Useful for brokerages exporting one file per window.
`
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.platform, "platform", "futu", "Platform whose raw exports to merge.")
}

func (c *mergeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	n, err := taxfolio.MergeHistories(cfg.DataDir, c.platform)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error merging %q exports: %v\n", c.platform, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Merged %d trades into %s\n", n, taxfolio.HistoryFileName(c.platform))
	return subcommands.ExitSuccess
}
