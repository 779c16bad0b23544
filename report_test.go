package taxfolio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProfitFileName(t *testing.T) {
	testCases := []struct {
		name         string
		platform     string
		method       string
		year         string
		ok           bool
	}{
		{name: "futu_offset_profit_2023.csv", platform: "futu", method: "offset", year: "2023", ok: true},
		{name: "longbridge_moving_avg_profit_2024.csv", platform: "longbridge", method: "moving_avg", year: "2024", ok: true},
		{name: "data/futu_offset_profit_2023.csv", platform: "futu", method: "offset", year: "2023", ok: true},
		{name: "futu_offset_loss_2023.csv", ok: false},
		{name: "futu_profit_2023.csv", ok: false},
		{name: "a_b_c_d_profit_2023.csv", ok: false},
		{name: "futu_history.csv", ok: false},
	}
	for _, tc := range testCases {
		platform, method, year, ok := ParseProfitFileName(tc.name)
		if ok != tc.ok {
			t.Errorf("ParseProfitFileName(%q) ok = %v, want %v", tc.name, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if platform != tc.platform || method != tc.method || year != tc.year {
			t.Errorf("ParseProfitFileName(%q) = %q, %q, %q, want %q, %q, %q",
				tc.name, platform, method, year, tc.platform, tc.method, tc.year)
		}
	}
}

func writeProfitFile(t *testing.T, dir, name string, rows []Closing) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("cannot create %s: %v", name, err)
	}
	defer f.Close()
	if err := EncodeProfits(f, rows); err != nil {
		t.Fatalf("cannot encode %s: %v", name, err)
	}
}

func summaryRow(t *testing.T, tag string, profit float64, currency, when string) Closing {
	t.Helper()
	c := closing(t, tag, profit, currency, when)
	c.Reason = YearTotal
	return c
}

func TestLoadSummaries(t *testing.T) {
	dir := t.TempDir()
	writeProfitFile(t, dir, "futu_offset_profit_2023.csv", []Closing{
		closing(t, "AAPL", 100, "USD", "2023-06-01 10:00:00"),
		summaryRow(t, TagByYear, 70, "USD", "2023-12-31 16:00:00"),
		summaryRow(t, TagByClose, 100, "USD", "2023-12-31 16:00:00"),
	})
	writeProfitFile(t, dir, "longbridge_moving_avg_profit_2023.csv", []Closing{
		summaryRow(t, TagByYear, 30, "USD", "2023-11-01 10:00:00"),
		summaryRow(t, TagByClose, 30, "USD", "2023-11-01 10:00:00"),
	})
	// A file outside the name contract is ignored even though it matches the
	// glob.
	writeProfitFile(t, dir, "a_b_c_d_profit_2023.csv", []Closing{
		summaryRow(t, TagByYear, 999, "USD", "2023-11-01 10:00:00"),
	})

	entries, err := LoadSummaries(dir)
	if err != nil {
		t.Fatalf("LoadSummaries() failed: %v", err)
	}
	// Only the summary rows count: 2 from each well-named file.
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	first := entries[0]
	if first.Platform != "futu" || first.Method != "offset" || first.Year != "2023" {
		t.Errorf("entry = %+v, want futu/offset/2023", first)
	}
	if first.TaxMethod != TagByYear {
		t.Errorf("TaxMethod = %q, want %q", first.TaxMethod, TagByYear)
	}
	checkMoney(t, "Profit", first.Profit, 70)
}

func TestBuildReport(t *testing.T) {
	entries := []SummaryEntry{
		{Platform: "futu", Method: "offset", TaxMethod: TagByYear, Year: "2023", Currency: "USD", Profit: M(70, "USD")},
		{Platform: "longbridge", Method: "offset", TaxMethod: TagByYear, Year: "2023", Currency: "USD", Profit: M(30, "USD")},
		{Platform: "futu", Method: "offset", TaxMethod: TagByYear, Year: "2023", Currency: "HKD", Profit: M(5, "HKD")},
		{Platform: "futu", Method: "offset", TaxMethod: TagByYear, Year: "2022", Currency: "USD", Profit: M(10, "USD")},
		{Platform: "futu", Method: "moving_avg", TaxMethod: TagByClose, Year: "2023", Currency: "USD", Profit: M(99, "USD")},
	}

	report := BuildReport(entries)
	// Empty (method, tax-method) combinations are skipped: offset/按单次计算
	// and moving_avg/按年度计算 have no entries.
	if len(report.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(report.Sections))
	}

	offset := report.Sections[0]
	if offset.Method != "offset" || offset.TaxMethod != TagByYear {
		t.Fatalf("sections[0] = %s/%s, want offset/%s", offset.Method, offset.TaxMethod, TagByYear)
	}
	// Rows sorted by year then currency; same-key entries summed across
	// platforms: 2023 USD = 70 + 30.
	if len(offset.Rows) != 3 {
		t.Fatalf("offset section has %d rows, want 3", len(offset.Rows))
	}
	wantRows := []struct {
		year, currency string
		profit         float64
	}{
		{"2022", "USD", 10},
		{"2023", "HKD", 5},
		{"2023", "USD", 100},
	}
	for i, want := range wantRows {
		row := offset.Rows[i]
		if row.Year != want.year || row.Currency != want.currency {
			t.Errorf("rows[%d] = %s/%s, want %s/%s", i, row.Year, row.Currency, want.year, want.currency)
		}
		if !row.Profit.Equal(M(want.profit, want.currency)) {
			t.Errorf("rows[%d].Profit = %s, want %v", i, row.Profit.Plain(), want.profit)
		}
	}

	moving := report.Sections[1]
	if moving.Method != "moving_avg" || moving.TaxMethod != TagByClose {
		t.Errorf("sections[1] = %s/%s, want moving_avg/%s", moving.Method, moving.TaxMethod, TagByClose)
	}
}
