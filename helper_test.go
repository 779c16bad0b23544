package taxfolio

import (
	"testing"
	"time"
)

// at parses a second-precision timestamp, failing the test on error.
func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return ts
}

// tbuy and tsell build USD trades for the strategy tests.
func tbuy(t *testing.T, symbol string, qty, price, fee float64, when string) Trade {
	t.Helper()
	return NewTrade(symbol, Buy, Q(qty), M(price, "USD"), M(fee, "USD"), "USD", at(t, when))
}

func tsell(t *testing.T, symbol string, qty, price, fee float64, when string) Trade {
	t.Helper()
	return NewTrade(symbol, Sell, Q(qty), M(price, "USD"), M(fee, "USD"), "USD", at(t, when))
}

// checkMoney compares a Money against the wanted amount in USD.
func checkMoney(t *testing.T, name string, got Money, want float64) {
	t.Helper()
	if !got.Equal(M(want, "USD")) {
		t.Errorf("%s = %s, want %v", name, got.Plain(), want)
	}
}

func checkQty(t *testing.T, name string, got Quantity, want float64) {
	t.Helper()
	if !got.Equal(Q(want)) {
		t.Errorf("%s = %s, want %v", name, got, want)
	}
}
