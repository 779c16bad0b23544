package taxfolio

// Result is the outcome of one full pass over a platform's trade stream:
// one YearProfit per calendar year present in the data and, for the
// moving-average method only, one YearHoldings per year.
type Result struct {
	Method   Method
	Profits  []YearProfit
	Holdings []YearHoldings
}

// Compute folds the trades through a fresh position book under the given
// method. Trades are stable-sorted by execution time first; the fold itself
// is sequential and deterministic, so replaying the same input yields the
// same result.
func Compute(trades []Trade, method Method) Result {
	sorted := make([]Trade, len(trades))
	copy(sorted, trades)
	SortTrades(sorted)

	book := NewBook()
	strategy := method.Strategy()
	agg := NewYearAggregator()

	var recorder *holdingsRecorder
	if method.Snapshots() {
		recorder = newHoldingsRecorder()
	}

	result := Result{Method: method}
	for _, t := range sorted {
		if recorder != nil {
			if _, open := agg.Open(); !open {
				// Very first trade of the whole stream: take the (empty)
				// start-of-year snapshot before anything is booked.
				recorder.start(t.Year(), book)
			}
		}
		if flushed := agg.Observe(t); flushed != nil {
			if recorder != nil {
				// End and start snapshots straddle the transition from the
				// same book state: no trade happens between them.
				recorder.end(flushed.Year, book)
				recorder.start(t.Year(), book)
			}
			result.Profits = append(result.Profits, *flushed)
		}
		if c, ok := strategy.Apply(book.Position(t.Symbol), t); ok {
			agg.Add(c)
		}
	}
	if final, ok := agg.Close(); ok {
		if recorder != nil {
			recorder.end(final.Year, book)
		}
		result.Profits = append(result.Profits, final)
	}
	if recorder != nil {
		result.Holdings = recorder.all()
	}
	return result
}
