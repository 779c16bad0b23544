// Package cmd implements the CLI application to compute and report
// realized trading profit.
package cmd

import (
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "data")
	c.Register(&mergeCmd{}, "data")

	c.Register(&computeCmd{}, "profit")
	c.Register(&reportCmd{}, "profit")
	c.Register(&holdingsCmd{}, "profit")

	c.Register(&assistCmd{}, "")
}
