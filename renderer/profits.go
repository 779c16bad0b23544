package renderer

import (
	"fmt"
	"strings"

	"github.com/jwei/taxfolio"
)

// YearProfitMarkdown renders one flushed year: the summary rows as a table,
// with the count of individual closings above it.
func YearProfitMarkdown(platform string, y taxfolio.YearProfit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s %d\n\n", platform, y.Year)
	fmt.Fprintf(&b, "%d closings realized.\n\n", len(y.Closings()))

	fmt.Fprintln(&b, "| Summary | Currency | Profit |")
	fmt.Fprintln(&b, "|:---|:---|---:|")
	for _, row := range y.Rows {
		if !row.IsSummary() {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			row.Symbol,
			row.Currency,
			row.Profit.SignedString(),
		)
	}
	return b.String()
}

// HoldingsMarkdown renders one year's holdings snapshot.
func HoldingsMarkdown(y taxfolio.YearHoldings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Holdings %d\n\n", y.Year)
	fmt.Fprintln(&b, "| Symbol | Currency | Start Qty | Start Avg Cost | End Qty | End Avg Cost |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
	for _, row := range y.Rows() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			row.Symbol,
			row.Currency,
			row.StartQty,
			row.StartAvgCost,
			row.EndQty,
			row.EndAvgCost,
		)
	}
	return b.String()
}
