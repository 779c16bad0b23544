package taxfolio

import "fmt"

// Method selects the lot-matching convention used to realize profit.
type Method int

const (
	// AverageCostOffset treats every opposing fill as a closing event up to
	// the overlap quantity, with the remainder reopening a position. Shorts
	// are tracked with negative quantities.
	AverageCostOffset Method = iota
	// MovingAverage blends buys into a single weighted average cost (fees
	// included in the basis) and realizes sells against it, capped at the
	// held quantity.
	MovingAverage
)

func (m Method) String() string {
	switch m {
	case AverageCostOffset:
		return "offset"
	case MovingAverage:
		return "moving_avg"
	default:
		return "unknown"
	}
}

// ParseMethod parses a string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "offset":
		return AverageCostOffset, nil
	case "moving_avg":
		return MovingAverage, nil
	default:
		return 0, fmt.Errorf("unknown method: %q (want offset or moving_avg)", s)
	}
}

// Strategy applies one trade to its position book entry, mutating the entry
// and returning the realized closing, if the trade produced one. A single
// fill closes at most one overlap, so there is never more than one.
type Strategy interface {
	Apply(pos *Position, t Trade) (Closing, bool)
}

// Strategy returns the strategy implementing the method.
func (m Method) Strategy() Strategy {
	switch m {
	case AverageCostOffset:
		return averageCostOffset{}
	case MovingAverage:
		return movingAverage{}
	default:
		panic("unknown method")
	}
}

// Snapshots reports whether the method produces start/end-of-year holdings
// snapshots.
func (m Method) Snapshots() bool { return m == MovingAverage }
