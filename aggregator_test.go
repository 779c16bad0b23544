package taxfolio

import "testing"

func closing(t *testing.T, symbol string, profit float64, currency, when string) Closing {
	t.Helper()
	return Closing{
		Reason:     PositionClosed,
		Symbol:     symbol,
		ClosePrice: M(0, currency),
		CostPrice:  M(0, currency),
		Quantity:   Q(0),
		Profit:     M(profit, currency),
		Time:       at(t, when),
		Currency:   currency,
	}
}

func TestYearAggregator_FlushesOnYearChange(t *testing.T) {
	agg := NewYearAggregator()

	if flushed := agg.Observe(tsell(t, "AAPL", 100, 12, 0, "2023-06-01 10:00:00")); flushed != nil {
		t.Fatal("the first trade must not flush anything")
	}
	agg.Add(closing(t, "AAPL", 100, "USD", "2023-06-01 10:00:00"))
	if flushed := agg.Observe(tsell(t, "AAPL", 10, 12, 0, "2023-12-31 16:00:00")); flushed != nil {
		t.Fatal("a same-year trade must not flush")
	}
	agg.Add(closing(t, "AAPL", -30, "USD", "2023-12-31 16:00:00"))

	// The first 2024 trade flushes 2023 before it is applied.
	flushed := agg.Observe(tbuy(t, "AAPL", 10, 10, 0, "2024-01-02 10:00:00"))
	if flushed == nil {
		t.Fatal("crossing the year boundary must flush")
	}
	if flushed.Year != 2023 {
		t.Errorf("flushed.Year = %d, want 2023", flushed.Year)
	}
	if got := len(flushed.Rows); got != 4 {
		t.Fatalf("flushed 2023 has %d rows, want 2 closings + 2 summaries", got)
	}
	if got := len(flushed.Closings()); got != 2 {
		t.Errorf("Closings() = %d records, want 2", got)
	}

	// Summary rows: total 100-30, then positive-only 100, both stamped with
	// the currency's last closing time.
	total, positive := flushed.Rows[2], flushed.Rows[3]
	if total.Reason != YearTotal || total.Symbol != TagByYear {
		t.Errorf("total row tagged %q/%q, want %q/%q", total.Reason, total.Symbol, YearTotal, TagByYear)
	}
	checkMoney(t, "total", total.Profit, 70)
	if positive.Symbol != TagByClose {
		t.Errorf("positive row tagged %q, want %q", positive.Symbol, TagByClose)
	}
	checkMoney(t, "positive", positive.Profit, 100)
	if want := at(t, "2023-12-31 16:00:00"); !total.Time.Equal(want) || !positive.Time.Equal(want) {
		t.Errorf("summary times = %v/%v, want %v", total.Time, positive.Time, want)
	}

	// Closing the stream flushes the open 2024 year, empty here.
	final, ok := agg.Close()
	if !ok {
		t.Fatal("Close() must flush the open year")
	}
	if final.Year != 2024 {
		t.Errorf("final.Year = %d, want 2024", final.Year)
	}
	if len(final.Rows) != 0 {
		t.Errorf("final year has %d rows, want none", len(final.Rows))
	}
}

func TestYearAggregator_SummariesPerCurrencyAscending(t *testing.T) {
	agg := NewYearAggregator()
	agg.Observe(tsell(t, "AAPL", 1, 1, 0, "2023-06-01 10:00:00"))
	agg.Add(
		closing(t, "AAPL", 50, "USD", "2023-06-01 10:00:00"),
		closing(t, "0700", 80, "HKD", "2023-07-01 10:00:00"),
		closing(t, "AAPL", -20, "USD", "2023-08-01 10:00:00"),
	)

	year, ok := agg.Close()
	if !ok {
		t.Fatal("Close() must flush the open year")
	}
	// 3 closings + 2 summary rows per currency, HKD before USD.
	if got := len(year.Rows); got != 7 {
		t.Fatalf("year has %d rows, want 7", got)
	}
	summaries := year.Rows[3:]
	wantCurrencies := []string{"HKD", "HKD", "USD", "USD"}
	for i, row := range summaries {
		if row.Currency != wantCurrencies[i] {
			t.Errorf("summary[%d].Currency = %q, want %q", i, row.Currency, wantCurrencies[i])
		}
	}
	if !summaries[0].Profit.Equal(M(80, "HKD")) {
		t.Errorf("HKD total = %s, want 80", summaries[0].Profit.Plain())
	}
	checkMoney(t, "USD total", summaries[2].Profit, 30)
	checkMoney(t, "USD positive", summaries[3].Profit, 50)
}

func TestYearAggregator_CloseWithoutTrades(t *testing.T) {
	agg := NewYearAggregator()
	if _, ok := agg.Close(); ok {
		t.Error("Close() on an untouched aggregator must report no year")
	}
}
