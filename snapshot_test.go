package taxfolio

import "testing"

func TestHoldingsRecorder_SkipsFlatAndShortPositions(t *testing.T) {
	book := NewBook()
	held := book.Position("AAPL")
	held.Quantity = Q(100)
	held.AvgCost = M(10, "USD")
	held.Currency = "USD"
	book.Position("FLAT") // zero quantity
	oversold := book.Position("OVER")
	oversold.Quantity = Q(-50)

	rec := newHoldingsRecorder()
	rec.end(2023, book)

	years := rec.all()
	if len(years) != 1 {
		t.Fatalf("got %d years, want 1", len(years))
	}
	rows := years[0].Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want only the held symbol", len(rows))
	}
	if rows[0].Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", rows[0].Symbol)
	}
	checkQty(t, "EndQty", rows[0].EndQty, 100)
	checkMoney(t, "EndAvgCost", rows[0].EndAvgCost, 10)
}

func TestYearHoldings_RowsSortedBySymbol(t *testing.T) {
	book := NewBook()
	for _, symbol := range []string{"TSLA", "AAPL", "MSFT"} {
		pos := book.Position(symbol)
		pos.Quantity = Q(1)
		pos.AvgCost = M(1, "USD")
		pos.Currency = "USD"
	}
	rec := newHoldingsRecorder()
	rec.start(2023, book)

	rows := rec.all()[0].Rows()
	want := []string{"AAPL", "MSFT", "TSLA"}
	for i, symbol := range want {
		if rows[i].Symbol != symbol {
			t.Errorf("rows[%d].Symbol = %q, want %q", i, rows[i].Symbol, symbol)
		}
	}
}
