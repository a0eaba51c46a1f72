package taxlot

import (
	"fmt"
	"slices"
)

// Sale describes one disposal to allocate against the lot set of an
// (account, symbol).
type Sale struct {
	ID       string
	Account  string
	Symbol   string
	Date     Date
	Quantity Quantity // shares sold
	Amount   Money    // total proceeds of the sale
}

// proceedsPerShare spreads the sale amount evenly over the sold quantity.
func (s Sale) proceedsPerShare() Money { return s.Amount.Div(s.Quantity) }

// MarshalJSON implements the json.Marshaler interface for Sale.
func (s Sale) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", s.ID)
	w.Append("account", s.Account)
	w.Append("symbol", s.Symbol)
	w.Append("date", s.Date)
	w.Append("quantity", s.Quantity)
	w.Append("amount", s.Amount)
	return w.MarshalJSON()
}

// AllocationResult is the deterministic breakdown of one sale across lots.
// Identical lot set, method, and sale always produce an identical result,
// field for field: all arithmetic is decimal and lot ordering is stable.
type AllocationResult struct {
	Sale        Sale
	Method      AllocationMethod
	Allocations []SaleAllocationRecord

	TotalQuantitySold Quantity
	TotalProceeds     Money
	TotalCostBasis    Money
	GainLoss          Money

	// Unfilled is the quantity left unallocated when the lots ran out. A
	// non-zero value comes with a Warning; the caller decides whether it
	// reflects missing history or a short position.
	Unfilled Quantity
	Warning  *PartialAllocationWarning
}

// Complete reports whether the sale was fully allocated.
func (r *AllocationResult) Complete() bool { return r.Unfilled.IsZero() }

// MarshalJSON flattens the sale fields into the result object so one line of
// JSONL carries the whole story of a sale.
func (r *AllocationResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.Sale)
	w.Append("method", r.Method.String())
	w.Append("allocations", r.Allocations)
	w.Append("quantitySold", r.TotalQuantitySold)
	w.Append("proceeds", r.TotalProceeds)
	w.Append("costBasis", r.TotalCostBasis)
	w.Append("gain", r.GainLoss)
	w.Optional("unfilled", r.Unfilled)
	return w.MarshalJSON()
}

// Allocate applies a sale against the lots of its (account, symbol) under
// the given method. Lots are mutated in place: each consumed lot gets a
// SaleAllocationRecord appended and its remaining quantity decremented.
//
// Running out of lots is not an error: the result carries the unfilled
// quantity and a PartialAllocationWarning. For SpecificID use
// AllocateSpecific, which requires the caller's lot list.
func Allocate(book *LotBook, sale Sale, method AllocationMethod) (*AllocationResult, error) {
	if method == SpecificID {
		return nil, fmt.Errorf("specific-id allocation requires a designated lot list, use AllocateSpecific")
	}
	lots, err := saleLots(book, sale)
	if err != nil {
		return nil, err
	}

	switch method {
	case FIFO:
		slices.SortStableFunc(lots, func(a, b *Lot) int { return compareDates(a.acquired, b.acquired) })
	case LIFO:
		slices.SortStableFunc(lots, func(a, b *Lot) int { return -compareDates(a.acquired, b.acquired) })
	case AverageCost:
		return allocateAverage(sale, lots), nil
	default:
		return nil, fmt.Errorf("unsupported allocation method %v", method)
	}

	return consumeInOrder(sale, method, lots), nil
}

// AllocateSpecific applies a sale against an explicit, ordered list of lot
// IDs. Unlike the other methods, a shortfall here is an error: the caller
// designated exactly these lots, so they must cover the sale.
func AllocateSpecific(book *LotBook, sale Sale, lotIDs []string) (*AllocationResult, error) {
	if _, err := saleLots(book, sale); err != nil {
		return nil, err
	}

	lots := make([]*Lot, 0, len(lotIDs))
	var available Quantity
	for _, id := range lotIDs {
		lot := book.Lot(id)
		if lot == nil {
			return nil, fmt.Errorf("designated lot %q not found", id)
		}
		if lot.account != sale.Account || lot.symbol != sale.Symbol {
			return nil, fmt.Errorf("designated lot %q belongs to %s/%s, not %s/%s", id, lot.account, lot.symbol, sale.Account, sale.Symbol)
		}
		lots = append(lots, lot)
		available = available.Add(lot.remaining)
	}
	if available.LessThan(sale.Quantity) {
		return nil, &InsufficientLotQuantityError{Requested: sale.Quantity, Available: available}
	}

	return consumeInOrder(sale, SpecificID, lots), nil
}

// saleLots validates the sale and performs the one authoritative lot lookup.
func saleLots(book *LotBook, sale Sale) ([]*Lot, error) {
	if !sale.Quantity.IsPositive() {
		return nil, fmt.Errorf("sale quantity must be positive, got %s", sale.Quantity)
	}
	if sale.Amount.IsNegative() {
		return nil, fmt.Errorf("sale amount must not be negative, got %s", sale.Amount)
	}
	return book.Lots(sale.Account, sale.Symbol), nil
}

// consumeInOrder walks the lots in the given order, consuming
// min(remaining, left) from each until the sale is fully allocated or the
// lots are exhausted.
func consumeInOrder(sale Sale, method AllocationMethod, lots []*Lot) *AllocationResult {
	pps := sale.proceedsPerShare()
	left := sale.Quantity

	var records []SaleAllocationRecord
	for _, lot := range lots {
		if left.IsZero() {
			break
		}
		if lot.remaining.IsZero() {
			continue
		}
		take := lot.remaining.Min(left)
		records = append(records, lot.consume(sale.ID, sale.Date, take, pps))
		left = left.Sub(take)
	}

	return newResult(sale, method, records, left)
}

// allocateAverage consumes from a synthetic pool of all open lots and
// redistributes the consumed quantity back across the real lots pro-rata to
// each lot's share of the total remaining quantity, so no single lot is
// disproportionately closed. The pool is a derived projection only; the real
// per-lot history stays intact.
func allocateAverage(sale Sale, lots []*Lot) *AllocationResult {
	pps := sale.proceedsPerShare()

	var open []*Lot
	var pool Quantity
	for _, lot := range lots {
		if lot.remaining.IsPositive() {
			open = append(open, lot)
			pool = pool.Add(lot.remaining)
		}
	}

	consumed := pool.Min(sale.Quantity)
	left := sale.Quantity.Sub(consumed)

	var records []SaleAllocationRecord
	var distributed Quantity
	for i, lot := range open {
		if consumed.IsZero() {
			break
		}
		var take Quantity
		if i == len(open)-1 {
			// The last open lot takes the exact residual so the
			// redistributed shares sum back to the consumed quantity.
			take = consumed.Sub(distributed).Min(lot.remaining)
		} else {
			take = consumed.Mul(lot.remaining).Div(pool)
		}
		if !take.IsPositive() {
			continue
		}
		records = append(records, lot.consume(sale.ID, sale.Date, take, pps))
		distributed = distributed.Add(take)
	}

	return newResult(sale, AverageCost, records, left)
}

// newResult aggregates the per-lot records into the sale-level totals.
func newResult(sale Sale, method AllocationMethod, records []SaleAllocationRecord, unfilled Quantity) *AllocationResult {
	r := &AllocationResult{
		Sale:        sale,
		Method:      method,
		Allocations: records,
		Unfilled:    unfilled,
	}
	for _, rec := range records {
		r.TotalQuantitySold = r.TotalQuantitySold.Add(rec.QuantitySold)
		r.TotalProceeds = r.TotalProceeds.Add(rec.Proceeds)
		r.TotalCostBasis = r.TotalCostBasis.Add(rec.CostBasis)
	}
	r.GainLoss = r.TotalProceeds.Sub(r.TotalCostBasis)
	if !unfilled.IsZero() {
		r.Warning = &PartialAllocationWarning{Unfilled: unfilled}
	}
	return r
}

// compareDates orders dates ascending.
func compareDates(a, b Date) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}
