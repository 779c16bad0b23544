package taxfolio

// movingAverage keeps one weighted average cost per symbol. Buys blend into
// it with the fee folded fully into the basis; sells never change it, they
// only reduce the quantity and realize profit against the pre-sell basis for
// the overlapping quantity.
//
// A sell larger than the held position is capped for profit purposes but
// still decrements the quantity in full, which can drive it negative. That
// asymmetry with the offset method is documented upstream behavior and is
// deliberately not corrected here: the negative quantity is not a short and
// keeps no basis.
type movingAverage struct{}

func (s movingAverage) Apply(pos *Position, t Trade) (Closing, bool) {
	pos.Currency = t.Currency
	switch t.Side {
	case Buy:
		s.buy(pos, t)
		return Closing{}, false
	case Sell:
		return s.sell(pos, t)
	default:
		return Closing{}, false
	}
}

func (movingAverage) buy(pos *Position, t Trade) {
	cur := pos.Quantity
	p := t.EffectivePrice()
	total := pos.AvgCost.Mul(cur).Add(p.Mul(t.Quantity)).Add(t.Fee)
	newQty := cur.Add(t.Quantity)
	if newQty.IsPositive() {
		pos.AvgCost = total.Div(newQty)
	} else {
		pos.AvgCost = M(0, t.Currency)
	}
	pos.Quantity = newQty
}

func (movingAverage) sell(pos *Position, t Trade) (Closing, bool) {
	cur := pos.Quantity
	p := t.EffectivePrice()

	var c Closing
	var closed bool
	closeQty := t.Quantity.Min(cur)
	if closeQty.IsPositive() {
		// Fee share of the closed part; a zero sell quantity yields ratio 0.
		allocFee := M(0, t.Currency)
		if t.Quantity.IsPositive() {
			allocFee = t.Fee.Mul(closeQty.Div(t.Quantity))
		}
		profit := p.Mul(closeQty).Sub(pos.AvgCost.Mul(closeQty)).Sub(allocFee)
		c = Closing{
			Reason:     PositionClosed,
			Symbol:     t.Symbol,
			ClosePrice: p,
			CostPrice:  pos.AvgCost, // pre-sell, unchanged
			Quantity:   closeQty,
			Profit:     profit,
			Time:       t.Time,
			Currency:   t.Currency,
		}
		closed = true
	}

	// The quantity drops by the full sell, even past zero on an oversell.
	pos.Quantity = cur.Sub(t.Quantity)
	if pos.Quantity.IsZero() {
		pos.reset()
	}
	return c, closed
}
