// Package renderer turns computed results into markdown, to be printed
// through a terminal renderer or pasted as-is.
package renderer

import (
	"fmt"
	"strings"

	"github.com/jwei/taxfolio"
)

// ReportMarkdown renders the cross-file profit report, one section per
// (method, tax-method) pair.
func ReportMarkdown(report *taxfolio.Report) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Realized Profit Report\n\n")

	for _, section := range report.Sections {
		fmt.Fprintf(&b, "## Method %s — %s\n\n", section.Method, section.TaxMethod)
		fmt.Fprintln(&b, "| Year | Currency | Profit |")
		fmt.Fprintln(&b, "|:---|:---|---:|")
		for _, row := range section.Rows {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				row.Year,
				row.Currency,
				row.Profit.SignedString(),
			)
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
