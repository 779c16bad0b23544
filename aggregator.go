package taxfolio

import "slices"

// YearProfit is the flushed result of one calendar year: every closing
// realized during the year, followed by the per-currency summary rows.
type YearProfit struct {
	Year int
	Rows []Closing
}

// Closings returns only the individual closing records, without the summary
// rows.
func (y YearProfit) Closings() []Closing {
	var out []Closing
	for _, r := range y.Rows {
		if !r.IsSummary() {
			out = append(out, r)
		}
	}
	return out
}

// YearAggregator detects year transitions in the timestamp-ordered trade
// stream and flushes the buffered closings of the year being left. It is an
// explicit two-state machine: no year open, or one year open with a buffer.
type YearAggregator struct {
	open bool
	year int
	buf  []Closing
}

// NewYearAggregator returns an aggregator with no open year.
func NewYearAggregator() *YearAggregator { return &YearAggregator{} }

// Open reports whether a year is currently open, and which.
func (a *YearAggregator) Open() (year int, ok bool) { return a.year, a.open }

// Observe must be called once per trade, in stream order, before the trade
// is applied to the book. When the trade's year differs from the open year
// the closing year is flushed and returned; the trade's own closings belong
// to the new year and must be added after.
func (a *YearAggregator) Observe(t Trade) *YearProfit {
	year := t.Year()
	if a.open && year != a.year {
		flushed := a.flush()
		a.year = year
		return &flushed
	}
	a.open, a.year = true, year
	return nil
}

// Add buffers realized closings for the currently open year.
func (a *YearAggregator) Add(cs ...Closing) {
	a.buf = append(a.buf, cs...)
}

// Close flushes the year still open at stream end. ok is false when no
// trade was ever observed.
func (a *YearAggregator) Close() (YearProfit, bool) {
	if !a.open {
		return YearProfit{}, false
	}
	a.open = false
	return a.flush(), true
}

func (a *YearAggregator) flush() YearProfit {
	rows := make([]Closing, len(a.buf), len(a.buf)+2)
	copy(rows, a.buf)
	rows = append(rows, summarize(a.buf)...)
	a.buf = nil
	return YearProfit{Year: a.year, Rows: rows}
}

// summarize produces the two summary rows per currency: the full realized
// total and the positive-only total. Currencies are emitted in ascending
// order; each row carries the timestamp of the currency's last closing.
func summarize(rows []Closing) []Closing {
	byCurrency := make(map[string][]Closing)
	for _, r := range rows {
		byCurrency[r.Currency] = append(byCurrency[r.Currency], r)
	}
	currencies := make([]string, 0, len(byCurrency))
	for c := range byCurrency {
		currencies = append(currencies, c)
	}
	slices.Sort(currencies)

	var out []Closing
	for _, currency := range currencies {
		sub := byCurrency[currency]
		total := M(0, currency)
		positive := M(0, currency)
		for _, r := range sub {
			total = total.Add(r.Profit)
			if r.Profit.IsPositive() {
				positive = positive.Add(r.Profit)
			}
		}
		last := sub[len(sub)-1].Time
		out = append(out,
			Closing{
				Reason:     YearTotal,
				Symbol:     TagByYear,
				ClosePrice: M(0, currency),
				CostPrice:  M(0, currency),
				Quantity:   Q(0),
				Profit:     total,
				Time:       last,
				Currency:   currency,
			},
			Closing{
				Reason:     YearTotal,
				Symbol:     TagByClose,
				ClosePrice: M(0, currency),
				CostPrice:  M(0, currency),
				Quantity:   Q(0),
				Profit:     positive,
				Time:       last,
				Currency:   currency,
			},
		)
	}
	return out
}
