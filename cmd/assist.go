package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/jwei/taxfolio"
	"github.com/jwei/taxfolio/agent"
	"github.com/jwei/taxfolio/renderer"
)

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with an accountant grounded on the profit reports" }
func (*assistCmd) Usage() string {
	return `tpf assist [question ...]

  Starts an interactive session with a Gemini-backed accountant whose
  context is the aggregated realized-profit report. Questions given as
  arguments are asked first, then input is read from the terminal.
  Requires GEMINI_API_KEY in the environment.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	report := renderer.ReportMarkdown(taxfolio.BuildReport(entries))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating Gemini client: %v\n", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, agent.NewAccountant(report))
	var prompts []string
	if q := strings.TrimSpace(strings.Join(f.Args(), " ")); q != "" {
		prompts = append(prompts, q)
	}
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
