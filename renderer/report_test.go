package renderer

import (
	"strings"
	"testing"

	"github.com/jwei/taxfolio"
)

func TestReportMarkdown(t *testing.T) {
	report := &taxfolio.Report{
		Sections: []taxfolio.ReportSection{
			{
				Method:    "offset",
				TaxMethod: taxfolio.TagByYear,
				Rows: []taxfolio.ReportRow{
					{Year: "2023", Currency: "USD", Profit: taxfolio.M(100, "USD")},
					{Year: "2024", Currency: "USD", Profit: taxfolio.M(-5, "USD")},
					{Year: "2025", Currency: "USD", Profit: taxfolio.M(0, "USD")},
				},
			},
		},
	}

	md := ReportMarkdown(report)
	for _, want := range []string{
		"# Realized Profit Report",
		"## Method offset — " + taxfolio.TagByYear,
		"| Year | Currency | Profit |",
		"| 2023 | USD | +$100.00 |",
		"| 2024 | USD | -$5.00 |",
		"| 2025 | USD | - |", // zero renders as a dash
	} {
		if !strings.Contains(md, want) {
			t.Errorf("ReportMarkdown() misses %q:\n%s", want, md)
		}
	}
}
