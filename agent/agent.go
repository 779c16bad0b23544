// Package agent runs an interactive Gemini session grounded on the computed
// realized-profit reports, so the numbers can be questioned in plain
// language.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the assistant handling the chat session.
type Agent struct {
	w          io.Writer
	r          *bufio.Reader
	Accountant *Expert
}

// New creates a new Agent writing to w and reading user input from r.
func New(w io.Writer, r io.Reader, accountant *Expert) *Agent {
	return &Agent{
		w:          w,
		r:          bufio.NewReader(r),
		Accountant: accountant,
	}
}

const prompt = "assist> "

// Run starts the interactive REPL session. Initial prompts, if any, are
// consumed before reading from the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if err := a.Accountant.Start(ctx, client); err != nil {
		return err
	}

	fmt.Fprintln(a.w, "Welcome to tpf assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Accountant.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
