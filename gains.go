package taxlot

// This file is the gain engine: pure, side-effect-free aggregations over a
// lot set supplied by the caller. The caller chooses the subset (typically
// open and partial lots) and supplies current prices; nothing here reads a
// price feed or mutates a lot.

// UnrealizedGainLoss returns the gain or loss currently carried by the lots:
// the market value of the remaining quantity at the current price, minus the
// cost basis attributed to that remaining quantity at each lot's original
// per-share cost. An empty lot set yields zero.
func UnrealizedGainLoss(lots []*Lot, currentPrice Money) Money {
	var total Money
	for _, lot := range lots {
		if lot.remaining.IsZero() {
			continue
		}
		value := currentPrice.Mul(lot.remaining)
		cost := lot.costPerShare().Mul(lot.remaining)
		total = total.Add(value.Sub(cost))
	}
	return total
}

// WeightedAverageCost returns the blended per-share cost of the lots: total
// cost basis over total original quantity. An empty lot set yields zero, not
// an error or NaN.
func WeightedAverageCost(lots []*Lot) Money {
	var cost Money
	var quantity Quantity
	for _, lot := range lots {
		cost = cost.Add(lot.costBasis)
		quantity = quantity.Add(lot.original)
	}
	if quantity.IsZero() {
		return Money{}
	}
	return cost.Div(quantity)
}

// RealizedGainLoss returns the total realized gain or loss recorded in the
// lots' sale-allocation histories. An empty lot set yields zero.
func RealizedGainLoss(lots []*Lot) Money {
	var total Money
	for _, lot := range lots {
		for _, rec := range lot.allocations {
			total = total.Add(rec.GainLoss)
		}
	}
	return total
}
