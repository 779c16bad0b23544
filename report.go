package taxfolio

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SummaryEntry is one year-flush summary row read back from a per-year
// profit file, annotated with the platform, method and year parsed from the
// file name.
type SummaryEntry struct {
	Platform  string
	Method    string
	TaxMethod string // the summary row's symbol-field tag
	Year      string
	Currency  string
	Profit    Money
}

// ParseProfitFileName parses "<platform>_<method>_profit_<year>.csv". The
// method token may itself contain one underscore ("moving_avg"), giving the
// five-token form.
func ParseProfitFileName(name string) (platform, method, year string, ok bool) {
	stem, _, _ := strings.Cut(filepath.Base(name), ".")
	parts := strings.Split(stem, "_")
	switch len(parts) {
	case 4:
		if parts[2] != "profit" {
			return "", "", "", false
		}
		return parts[0], parts[1], parts[3], true
	case 5:
		if parts[3] != "profit" {
			return "", "", "", false
		}
		return parts[0], parts[1] + "_" + parts[2], parts[4], true
	default:
		return "", "", "", false
	}
}

// LoadSummaries scans dir for per-year profit files and returns their
// summary rows. Files whose names do not satisfy the contract are skipped.
func LoadSummaries(dir string) ([]SummaryEntry, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*_profit_*.csv"))
	if err != nil {
		return nil, err
	}
	slices.Sort(files)

	var entries []SummaryEntry
	for _, file := range files {
		platform, method, year, ok := ParseProfitFileName(file)
		if !ok {
			continue
		}
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		rows, err := DecodeProfits(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot decode %q: %w", file, err)
		}
		for _, r := range rows {
			if !r.IsSummary() {
				continue
			}
			entries = append(entries, SummaryEntry{
				Platform:  platform,
				Method:    method,
				TaxMethod: r.Symbol,
				Year:      year,
				Currency:  r.Currency,
				Profit:    r.Profit,
			})
		}
	}
	return entries, nil
}

// Report is the cross-file aggregation: one section per (method, tax-method)
// pair, each a year by currency profit table summed across platforms.
type Report struct {
	Sections []ReportSection
}

type ReportSection struct {
	Method    string
	TaxMethod string
	Rows      []ReportRow
}

type ReportRow struct {
	Year     string
	Currency string
	Profit   Money
}

// BuildReport groups summary entries into report sections. Methods and tax
// methods appear in order of first appearance; rows are sorted by year then
// currency.
func BuildReport(entries []SummaryEntry) *Report {
	var methods, taxMethods []string
	for _, e := range entries {
		if !slices.Contains(methods, e.Method) {
			methods = append(methods, e.Method)
		}
		if !slices.Contains(taxMethods, e.TaxMethod) {
			taxMethods = append(taxMethods, e.TaxMethod)
		}
	}

	report := &Report{}
	for _, method := range methods {
		for _, taxMethod := range taxMethods {
			section := ReportSection{Method: method, TaxMethod: taxMethod}

			type key struct{ year, currency string }
			sums := make(map[key]Money)
			var order []key
			for _, e := range entries {
				if e.Method != method || e.TaxMethod != taxMethod {
					continue
				}
				k := key{e.Year, e.Currency}
				if _, ok := sums[k]; !ok {
					order = append(order, k)
				}
				sums[k] = sums[k].Add(e.Profit)
			}
			slices.SortFunc(order, func(a, b key) int {
				if a.year != b.year {
					return strings.Compare(a.year, b.year)
				}
				return strings.Compare(a.currency, b.currency)
			})
			for _, k := range order {
				section.Rows = append(section.Rows, ReportRow{
					Year:     k.year,
					Currency: k.currency,
					Profit:   sums[k],
				})
			}
			if len(section.Rows) > 0 {
				report.Sections = append(report.Sections, section)
			}
		}
	}
	return report
}
