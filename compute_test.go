package taxfolio

import (
	"bytes"
	"testing"
)

func TestCompute_MovingAverageAcrossYears(t *testing.T) {
	trades := []Trade{
		tbuy(t, "AAPL", 100, 10, 0, "2023-06-01 10:00:00"),
		tsell(t, "AAPL", 50, 12, 0, "2024-02-01 10:00:00"),
	}
	result := Compute(trades, MovingAverage)

	if len(result.Profits) != 2 {
		t.Fatalf("got %d profit years, want 2", len(result.Profits))
	}
	y2023, y2024 := result.Profits[0], result.Profits[1]
	if y2023.Year != 2023 || y2024.Year != 2024 {
		t.Fatalf("years = %d, %d, want 2023, 2024", y2023.Year, y2024.Year)
	}
	if len(y2023.Rows) != 0 {
		t.Errorf("2023 has %d rows, want none: nothing was realized", len(y2023.Rows))
	}
	if got := len(y2024.Closings()); got != 1 {
		t.Fatalf("2024 has %d closings, want 1", got)
	}
	checkMoney(t, "2024 profit", y2024.Closings()[0].Profit, 100)

	// Holdings: 2023 ends with 100 @ 10, and 2024 starts from the exact same
	// state before ending at 50 @ 10.
	if len(result.Holdings) != 2 {
		t.Fatalf("got %d holding years, want 2", len(result.Holdings))
	}
	h2023 := result.Holdings[0].Rows()
	if len(h2023) != 1 {
		t.Fatalf("2023 holdings has %d rows, want 1", len(h2023))
	}
	checkQty(t, "2023 StartQty", h2023[0].StartQty, 0)
	checkQty(t, "2023 EndQty", h2023[0].EndQty, 100)
	checkMoney(t, "2023 EndAvgCost", h2023[0].EndAvgCost, 10)

	h2024 := result.Holdings[1].Rows()
	if len(h2024) != 1 {
		t.Fatalf("2024 holdings has %d rows, want 1", len(h2024))
	}
	checkQty(t, "2024 StartQty", h2024[0].StartQty, 100)
	checkMoney(t, "2024 StartAvgCost", h2024[0].StartAvgCost, 10)
	checkQty(t, "2024 EndQty", h2024[0].EndQty, 50)
	checkMoney(t, "2024 EndAvgCost", h2024[0].EndAvgCost, 10)

	// Continuity: end of year Y equals start of year Y+1.
	if !h2023[0].EndQty.Equal(h2024[0].StartQty) || !h2023[0].EndAvgCost.Equal(h2024[0].StartAvgCost) {
		t.Error("end-of-2023 and start-of-2024 snapshots differ")
	}
}

func TestCompute_OffsetEmitsNoHoldings(t *testing.T) {
	trades := []Trade{
		tbuy(t, "AAPL", 100, 10, 0, "2023-06-01 10:00:00"),
		tsell(t, "AAPL", 100, 12, 0, "2023-07-01 10:00:00"),
	}
	result := Compute(trades, AverageCostOffset)
	if result.Holdings != nil {
		t.Errorf("offset produced %d holding years, want none", len(result.Holdings))
	}
	if got := len(result.Profits); got != 1 {
		t.Fatalf("got %d profit years, want 1", got)
	}
	closings := result.Profits[0].Closings()
	if len(closings) != 1 {
		t.Fatalf("got %d closings, want 1", len(closings))
	}
	checkMoney(t, "profit", closings[0].Profit, 200)
}

func TestCompute_SortsInputAndKeepsItIntact(t *testing.T) {
	// Trades arrive newest first; the fold must see them oldest first
	// without reordering the caller's slice.
	trades := []Trade{
		tsell(t, "AAPL", 100, 12, 0, "2023-07-01 10:00:00"),
		tbuy(t, "AAPL", 100, 10, 0, "2023-06-01 10:00:00"),
	}
	result := Compute(trades, AverageCostOffset)
	closings := result.Profits[0].Closings()
	if len(closings) != 1 {
		t.Fatalf("got %d closings, want 1: the buy must be applied first", len(closings))
	}
	checkMoney(t, "profit", closings[0].Profit, 200)
	if trades[0].Side != Sell {
		t.Error("Compute reordered the caller's slice")
	}
}

func TestCompute_ReplayIsDeterministic(t *testing.T) {
	trades := []Trade{
		tbuy(t, "AAPL", 100, 10, 1, "2023-06-01 10:00:00"),
		tsell(t, "AAPL", 60, 12, 0.6, "2023-08-01 10:00:00"),
		tbuy(t, "TSLA", 10, 200, 2, "2023-09-01 10:00:00"),
		tsell(t, "TSLA", 10, 180, 2, "2024-03-01 10:00:00"),
	}

	// Round-trip the history through its codec, recompute, and compare the
	// encoded profit files byte for byte.
	var file bytes.Buffer
	if err := EncodeHistory(&file, trades); err != nil {
		t.Fatalf("EncodeHistory() failed: %v", err)
	}
	replayed, err := DecodeHistory(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("DecodeHistory() failed: %v", err)
	}

	first := Compute(trades, MovingAverage)
	second := Compute(replayed, MovingAverage)
	if len(first.Profits) != len(second.Profits) {
		t.Fatalf("replay produced %d years, want %d", len(second.Profits), len(first.Profits))
	}
	for i := range first.Profits {
		var a, b bytes.Buffer
		if err := EncodeProfits(&a, first.Profits[i].Rows); err != nil {
			t.Fatalf("EncodeProfits() failed: %v", err)
		}
		if err := EncodeProfits(&b, second.Profits[i].Rows); err != nil {
			t.Fatalf("EncodeProfits() failed: %v", err)
		}
		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Errorf("year %d differs between the run and its replay:\n%s\n%s",
				first.Profits[i].Year, a.String(), b.String())
		}
	}
}
