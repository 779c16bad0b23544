package taxfolio

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

// Side identifies the direction of a trade.
type Side int

const (
	Buy Side = iota + 1
	Sell
)

// Wire tags for trade sides, as produced by the brokerage exports.
const (
	sideBuyTag  = "OrderSide.Buy"
	sideSellTag = "OrderSide.Sell"
)

// UnrecognizedSideError reports a side tag that is neither a buy nor a sell.
// The upstream exports only ever produce the two OrderSide tags; anything
// else is rejected at the decoding boundary rather than silently dropped.
type UnrecognizedSideError struct {
	Tag string
}

func (e *UnrecognizedSideError) Error() string {
	return fmt.Sprintf("unrecognized side tag %q (want %q or %q)", e.Tag, sideBuyTag, sideSellTag)
}

// ParseSide parses a wire side tag.
func ParseSide(s string) (Side, error) {
	switch s {
	case sideBuyTag:
		return Buy, nil
	case sideSellTag:
		return Sell, nil
	default:
		return 0, &UnrecognizedSideError{Tag: s}
	}
}

// Tag returns the wire tag for the side.
func (s Side) Tag() string {
	switch s {
	case Buy:
		return sideBuyTag
	case Sell:
		return sideSellTag
	default:
		return fmt.Sprintf("OrderSide(%d)", int(s))
	}
}

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// optionPattern matches US option symbols like AAPL240119C00150000.US:
// root, YYMMDD expiry, C or P, strike.
var optionPattern = regexp.MustCompile(`^([A-Z]+)(\d{6})([CP])(\d+)\.US$`)

// optionMultiplier is the standard contract multiplier for US options.
var optionMultiplier = Q(100)

// Trade is one executed fill, normalized from an input row. It is immutable.
type Trade struct {
	Symbol   string
	Side     Side
	Quantity Quantity // positive, as reported
	Price    Money    // per-unit execution price, pre-multiplier
	Fee      Money    // total commission for this fill
	Currency string
	Time     time.Time // execution time, second precision

	// priceNaN records a not-a-number price field. It only ever happens on
	// option rows in the upstream exports, where it means a zero-premium
	// exercise or expiry.
	priceNaN bool
}

// NewTrade builds a trade from already-parsed fields.
func NewTrade(symbol string, side Side, qty Quantity, price, fee Money, currency string, at time.Time) Trade {
	return Trade{
		Symbol:   symbol,
		Side:     side,
		Quantity: qty,
		Price:    price,
		Fee:      fee,
		Currency: currency,
		Time:     at.Truncate(time.Second),
	}
}

// IsOption reports whether the trade's symbol is a US option contract.
func (t Trade) IsOption() bool { return optionPattern.MatchString(t.Symbol) }

// EffectivePrice returns the per-unit price the engine accounts with: for
// option contracts the reported premium times the contract multiplier, or 0
// when the premium is not-a-number.
func (t Trade) EffectivePrice() Money {
	if t.IsOption() {
		if t.priceNaN {
			return M(0, t.Currency)
		}
		return t.Price.Mul(optionMultiplier)
	}
	return t.Price
}

// SignedQuantity returns +Quantity for a buy and -Quantity for a sell.
// Only the offset method dispatches on sign; the moving-average method keeps
// quantities unsigned and dispatches on Side.
func (t Trade) SignedQuantity() Quantity {
	if t.Side == Sell {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// Year returns the calendar year of the trade.
func (t Trade) Year() int { return t.Time.Year() }

// SortTrades sorts trades ascending by execution time. The sort is stable:
// trades at the same second keep their original relative order.
func SortTrades(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Time.Before(trades[j].Time)
	})
}
