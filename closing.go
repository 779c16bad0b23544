package taxfolio

import "time"

// Reason tags a realized-profit record with the kind of closing event that
// produced it. The literal values are the Chinese tags of the original
// brokerage reports; they are part of the output file contract.
type Reason string

const (
	// ShortCovered: a short position was fully bought back (offset method).
	ShortCovered Reason = "做空了结"
	// LongClosed: a long position was fully sold out (offset method).
	LongClosed Reason = "做多了结"
	// PositionClosed: a sell realized profit against the moving average cost.
	PositionClosed Reason = "平仓了结"
	// YearTotal tags the per-currency summary rows appended at each year flush.
	YearTotal Reason = "年度汇总"
)

// Symbol-field tags used by the two summary rows of a year flush.
const (
	// TagByYear marks the sum of all realized profit, gains and losses.
	TagByYear = "按年度计算"
	// TagByClose marks the sum of only the positive closings.
	TagByClose = "按单次计算"
)

// Closing is one realized-profit record, emitted when a position is reduced
// or reversed. It is pure output: the engine never reads it back.
type Closing struct {
	Reason     Reason
	Symbol     string
	ClosePrice Money
	CostPrice  Money
	Quantity   Quantity
	Profit     Money
	Time       time.Time
	Currency   string
}

// IsSummary reports whether the record is a year-flush summary row rather
// than an individual closing.
func (c Closing) IsSummary() bool { return c.Reason == YearTotal }
