package taxfolio

// averageCostOffset realizes profit by offsetting every opposing fill
// against the position's average cost. A fill opposing the current
// position's sign closes it up to the overlap quantity, with the fee
// allocated proportionally; a full close emits a ShortCovered or LongClosed
// record. The remainder beyond the overlap reopens a position at the fill
// price, inheriting the leftover share of the fee. Same-sign fills blend
// into the average cost and accumulate their fee unallocated, to be settled
// by the eventual close.
type averageCostOffset struct{}

func (s averageCostOffset) Apply(pos *Position, t Trade) (Closing, bool) {
	q := t.SignedQuantity()
	if q.IsZero() {
		return Closing{}, false
	}
	pos.Currency = t.Currency
	p := t.EffectivePrice()

	cur := pos.Quantity
	switch {
	case q.IsPositive() && cur.IsNegative():
		return s.cover(pos, q, p, t)
	case q.IsNegative() && cur.IsPositive():
		return s.closeLong(pos, q, p, t)
	default:
		s.blend(pos, q, p, t.Fee)
		return Closing{}, false
	}
}

// cover buys back a short: q > 0, pos.Quantity < 0.
func (averageCostOffset) cover(pos *Position, q Quantity, p Money, t Trade) (Closing, bool) {
	cur := pos.Quantity
	short := cur.Neg() // |cur|
	overlap := q.Min(short)
	allocFee := t.Fee.Mul(overlap.Div(q))
	// Total cost of buying back the overlap: the carried fee, this fill's
	// allocated fee, and the buyback itself.
	totalCost := pos.UnallocatedFee.Add(allocFee).Add(p.Mul(overlap))

	var c Closing
	var closed bool
	if overlap.Equal(short) {
		// Full cover: the short sale price is the realized close price.
		c = Closing{
			Reason:     ShortCovered,
			Symbol:     t.Symbol,
			ClosePrice: pos.AvgCost,
			CostPrice:  totalCost.Div(overlap),
			Quantity:   overlap,
			Profit:     pos.AvgCost.Mul(overlap).Sub(totalCost),
			Time:       t.Time,
			Currency:   t.Currency,
		}
		closed = true
	}

	newQty := cur.Add(q)
	pos.Quantity = newQty
	switch {
	case newQty.IsPositive():
		// Flipped long: the residual opens at the fill price with its share
		// of the fee left unallocated.
		pos.AvgCost = p
		pos.UnallocatedFee = t.Fee.Mul(newQty.Div(q))
	case newQty.IsZero():
		pos.reset()
	default:
		// Still short: spread the remaining short credit over the residual.
		pos.AvgCost = pos.AvgCost.Mul(short).Sub(totalCost).Div(newQty.Abs())
		pos.UnallocatedFee = M(0, t.Currency)
	}
	return c, closed
}

// closeLong sells down a long: q < 0, pos.Quantity > 0.
func (averageCostOffset) closeLong(pos *Position, q Quantity, p Money, t Trade) (Closing, bool) {
	cur := pos.Quantity
	qAbs := q.Abs()
	overlap := qAbs.Min(cur)
	allocFee := t.Fee.Mul(overlap.Div(qAbs))
	// Total cost of the held position plus the fees settled by this fill.
	totalCost := pos.UnallocatedFee.Add(allocFee).Add(pos.AvgCost.Mul(cur))

	var c Closing
	var closed bool
	if overlap.Equal(cur) {
		c = Closing{
			Reason:     LongClosed,
			Symbol:     t.Symbol,
			ClosePrice: p,
			CostPrice:  totalCost.Div(overlap),
			Quantity:   overlap,
			Profit:     p.Mul(overlap).Sub(totalCost),
			Time:       t.Time,
			Currency:   t.Currency,
		}
		closed = true
	}

	newQty := cur.Add(q)
	pos.Quantity = newQty
	switch {
	case newQty.IsNegative():
		// Flipped short: the residual opens at the fill price.
		pos.AvgCost = p
		pos.UnallocatedFee = t.Fee.Mul(newQty.Abs().Div(qAbs))
	case newQty.IsZero():
		pos.reset()
	default:
		// Still long: the sale proceeds reduce the remaining basis pool.
		pos.AvgCost = totalCost.Sub(p.Mul(overlap)).Div(newQty)
		pos.UnallocatedFee = M(0, t.Currency)
	}
	return c, closed
}

// blend folds a same-sign fill into the average cost. The fee is not part of
// the basis; it accumulates unallocated until a closing fill settles it.
func (averageCostOffset) blend(pos *Position, q Quantity, p Money, fee Money) {
	cur := pos.Quantity
	total := pos.AvgCost.Mul(cur.Abs()).Add(p.Mul(q.Abs()))
	pos.AvgCost = total.Div(cur.Abs().Add(q.Abs()))
	pos.Quantity = cur.Add(q)
	pos.UnallocatedFee = pos.UnallocatedFee.Add(fee)
}
