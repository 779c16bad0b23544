package taxfolio

import "slices"

// HoldingRow is one symbol's merged start/end-of-year holding state. A
// symbol absent from one side of the year keeps zero quantity and cost for
// that side.
type HoldingRow struct {
	Symbol       string
	Currency     string
	StartQty     Quantity
	StartAvgCost Money
	EndQty       Quantity
	EndAvgCost   Money
}

// YearHoldings is the holdings snapshot of one calendar year, one row per
// symbol held at the start or the end of the year.
type YearHoldings struct {
	Year int
	rows map[string]*HoldingRow
}

// Rows returns the holding rows in lexical symbol order.
func (y *YearHoldings) Rows() []HoldingRow {
	symbols := make([]string, 0, len(y.rows))
	for s := range y.rows {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	out := make([]HoldingRow, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, *y.rows[s])
	}
	return out
}

func (y *YearHoldings) row(symbol, currency string) *HoldingRow {
	r, ok := y.rows[symbol]
	if !ok {
		r = &HoldingRow{Symbol: symbol, Currency: currency}
		y.rows[symbol] = r
	}
	if r.Currency == "" {
		r.Currency = currency
	}
	return r
}

// holdingsRecorder collects start and end-of-year snapshots while the
// moving-average fold runs. Start-of-year Y+1 is always recorded from the
// same book state as end-of-year Y, so the continuity invariant holds by
// construction.
type holdingsRecorder struct {
	years map[int]*YearHoldings
}

func newHoldingsRecorder() *holdingsRecorder {
	return &holdingsRecorder{years: make(map[int]*YearHoldings)}
}

func (h *holdingsRecorder) year(y int) *YearHoldings {
	yh, ok := h.years[y]
	if !ok {
		yh = &YearHoldings{Year: y, rows: make(map[string]*HoldingRow)}
		h.years[y] = yh
	}
	return yh
}

// start snapshots every held position as the start-of-year state of year y.
func (h *holdingsRecorder) start(y int, b *Book) {
	yh := h.year(y)
	for _, symbol := range b.Symbols() {
		pos := b.Position(symbol)
		if !pos.Quantity.IsPositive() {
			continue
		}
		r := yh.row(symbol, pos.Currency)
		r.StartQty = pos.Quantity
		r.StartAvgCost = pos.AvgCost
	}
}

// end snapshots every held position as the end-of-year state of year y.
func (h *holdingsRecorder) end(y int, b *Book) {
	yh := h.year(y)
	for _, symbol := range b.Symbols() {
		pos := b.Position(symbol)
		if !pos.Quantity.IsPositive() {
			continue
		}
		r := yh.row(symbol, pos.Currency)
		r.EndQty = pos.Quantity
		r.EndAvgCost = pos.AvgCost
	}
}

// all returns the recorded years in ascending order.
func (h *holdingsRecorder) all() []YearHoldings {
	years := make([]int, 0, len(h.years))
	for y := range h.years {
		years = append(years, y)
	}
	slices.Sort(years)
	out := make([]YearHoldings, 0, len(years))
	for _, y := range years {
		out = append(out, *h.years[y])
	}
	return out
}
