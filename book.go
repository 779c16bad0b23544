package taxfolio

import (
	"slices"
)

// Position is the running state kept per symbol: the authoritative in-memory
// book entry. It is mutated in place by the lot-matching strategies.
//
// Invariant: AvgCost and UnallocatedFee are meaningful only while Quantity is
// non-zero; whenever Quantity returns to exactly zero they are reset to zero.
type Position struct {
	Symbol   string
	Quantity Quantity // signed for the offset method
	AvgCost  Money    // cost basis per unit
	// UnallocatedFee is fee not yet attributed to a closing event, carried
	// forward when a position partially closes and reopens in the same fill.
	// Only the offset method uses it.
	UnallocatedFee Money
	Currency       string
}

// reset clears the cost state when the position returns to flat.
func (p *Position) reset() {
	p.AvgCost = M(0, p.Currency)
	p.UnallocatedFee = M(0, p.Currency)
}

// Book holds one Position per symbol. Entries are created lazily on first
// access with the zero state and never removed: they live for the duration
// of one run. The book is owned by a single sequential fold, so it needs no
// locking.
type Book struct {
	positions map[string]*Position
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{positions: make(map[string]*Position)}
}

// Position returns the entry for symbol, creating the zero-state entry on
// first access.
func (b *Book) Position(symbol string) *Position {
	p, ok := b.positions[symbol]
	if !ok {
		p = &Position{Symbol: symbol}
		b.positions[symbol] = p
	}
	return p
}

// Symbols returns all symbols ever traded, in lexical order.
func (b *Book) Symbols() []string {
	symbols := make([]string, 0, len(b.positions))
	for s := range b.positions {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	return symbols
}
