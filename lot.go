package taxlot

import (
	"encoding/json"
	"fmt"
)

// LotStatus describes how much of a lot's original quantity is still held.
type LotStatus int

const (
	// Open means the lot has never been consumed by a sale.
	Open LotStatus = iota
	// Partial means some, but not all, of the lot has been sold.
	Partial
	// Closed means the lot is fully sold. Closed lots are kept for audit.
	Closed
)

func (s LotStatus) String() string {
	switch s {
	case Open:
		return "open"
	case Partial:
		return "partial"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Provenance records how a lot came into existence.
type Provenance int

const (
	// TransactionDerived lots come from an acquisition transaction.
	TransactionDerived Provenance = iota
	// SnapshotDerived lots were bootstrapped from a holdings snapshot
	// because no transaction history existed. Their acquisition date is the
	// snapshot date, so holding-period and gain figures are approximate.
	SnapshotDerived
)

func (p Provenance) String() string {
	switch p {
	case SnapshotDerived:
		return "snapshot"
	default:
		return "transaction"
	}
}

// SaleAllocationRecord is the auditable trace of one sale consuming part of
// one lot.
type SaleAllocationRecord struct {
	LotID        string   `json:"lot"`
	SaleID       string   `json:"sale"`
	Date         Date     `json:"date"`
	QuantitySold Quantity `json:"quantity"`
	CostBasis    Money    `json:"cost"`     // cost basis allocated to the sold quantity
	Proceeds     Money    `json:"proceeds"` // share of the sale's proceeds
	GainLoss     Money    `json:"gain"`     // Proceeds - CostBasis
	HoldingDays  int      `json:"holdingDays"`
}

// CorporateActionKind distinguishes forward splits from reverse splits.
type CorporateActionKind int

const (
	// Split is a forward split; its ratio is greater than 1.
	Split CorporateActionKind = iota
	// ReverseSplit is a reverse split; its ratio is between 0 and 1.
	ReverseSplit
)

func (k CorporateActionKind) String() string {
	if k == ReverseSplit {
		return "reverse-split"
	}
	return "split"
}

// MarshalJSON persists the kind as its string form.
func (k CorporateActionKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *CorporateActionKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "split":
		*k = Split
	case "reverse-split":
		*k = ReverseSplit
	default:
		return fmt.Errorf("unknown corporate-action kind: %q", s)
	}
	return nil
}

// CorporateActionRecord is the auditable trace of one split applied to a lot.
type CorporateActionRecord struct {
	Kind  CorporateActionKind `json:"kind"`
	Date  Date                `json:"date"` // effective date
	Ratio Quantity            `json:"ratio"`
}

// Lot is one discrete, dated acquisition of a security, tracked
// independently for cost-basis purposes. All fields are unexported: a lot is
// created by newLot, which rejects invalid input, and thereafter only
// mutated by consume (sales) and rescale (corporate actions), which preserve
// the lot invariants:
//
//   - 0 <= remaining <= original
//   - sold + remaining == original
//   - costBasis only changes under a joint quantity/price rescale
type Lot struct {
	id            string
	account       string
	symbol        string
	acquired      Date
	original      Quantity
	remaining     Quantity
	sold          Quantity // split-adjusted total quantity consumed by sales
	costBasis     Money    // total cost, not per-share
	pricePerShare Money    // costBasis/original at creation, rescaled on splits
	provenance    Provenance
	lowConfidence bool // set when a snapshot position carried no cost basis
	adjustments   []CorporateActionRecord
	allocations   []SaleAllocationRecord
}

// newLot creates an open lot. It rejects a non-positive quantity and a
// negative cost basis; a zero cost basis is allowed only for snapshot
// bootstrap, where it flags the lot as low-confidence.
func newLot(id, account, symbol string, acquired Date, quantity Quantity, costBasis Money, provenance Provenance) (*Lot, error) {
	if !quantity.IsPositive() {
		return nil, &InvalidAcquisitionError{TransactionID: id, Reason: fmt.Sprintf("quantity must be positive, got %s", quantity)}
	}
	if costBasis.IsNegative() {
		return nil, &InvalidAcquisitionError{TransactionID: id, Reason: fmt.Sprintf("cost basis must not be negative, got %s", costBasis)}
	}
	return &Lot{
		id:            id,
		account:       account,
		symbol:        symbol,
		acquired:      acquired,
		original:      quantity,
		remaining:     quantity,
		costBasis:     costBasis,
		pricePerShare: costBasis.Div(quantity),
		provenance:    provenance,
		lowConfidence: provenance == SnapshotDerived && costBasis.IsZero(),
	}, nil
}

func (l *Lot) ID() string            { return l.id }
func (l *Lot) Account() string       { return l.account }
func (l *Lot) Symbol() string        { return l.symbol }
func (l *Lot) AcquisitionDate() Date { return l.acquired }

// OriginalQuantity returns the acquired quantity in current (split-adjusted) units.
func (l *Lot) OriginalQuantity() Quantity { return l.original }

// RemainingQuantity returns the quantity still held.
func (l *Lot) RemainingQuantity() Quantity { return l.remaining }

// SoldQuantity returns the split-adjusted quantity consumed by sales.
// RemainingQuantity + SoldQuantity always equals OriginalQuantity.
func (l *Lot) SoldQuantity() Quantity { return l.sold }

// CostBasis returns the lot's total dollar cost. Splits never change it.
func (l *Lot) CostBasis() Money { return l.costBasis }

// PricePerShare returns the per-share cost, frozen at creation and rescaled
// only by corporate actions.
func (l *Lot) PricePerShare() Money { return l.pricePerShare }

func (l *Lot) Provenance() Provenance { return l.provenance }

// LowConfidence reports whether the lot was bootstrapped without a cost
// basis, forfeiting holding-period and gain accuracy.
func (l *Lot) LowConfidence() bool { return l.lowConfidence }

// Status is derived from the remaining quantity, so it can never disagree
// with it: Closed iff nothing remains, Open iff nothing was sold.
func (l *Lot) Status() LotStatus {
	switch {
	case l.remaining.IsZero():
		return Closed
	case l.remaining.Equal(l.original):
		return Open
	default:
		return Partial
	}
}

// Allocations returns the ordered sale-allocation history.
func (l *Lot) Allocations() []SaleAllocationRecord {
	out := make([]SaleAllocationRecord, len(l.allocations))
	copy(out, l.allocations)
	return out
}

// Adjustments returns the ordered corporate-action history.
func (l *Lot) Adjustments() []CorporateActionRecord {
	out := make([]CorporateActionRecord, len(l.adjustments))
	copy(out, l.adjustments)
	return out
}

// costPerShare is the rate used to allocate cost basis to a sale: always the
// lot's original per-share cost, never a remaining-adjusted figure. It is
// identical to pricePerShare by construction but derived from costBasis so
// that the allocated amounts sum back to the total cost exactly.
func (l *Lot) costPerShare() Money { return l.costBasis.Div(l.original) }

// consume decrements the lot by quantity sold to one sale and appends the
// allocation record. The allocation engine guarantees quantity <= remaining;
// violating that here would silently break quantity conservation, so it panics.
func (l *Lot) consume(saleID string, on Date, quantity Quantity, proceedsPerShare Money) SaleAllocationRecord {
	if quantity.GreaterThan(l.remaining) {
		panic(fmt.Sprintf("lot %s: consuming %s exceeds remaining %s", l.id, quantity, l.remaining))
	}
	cost := l.costPerShare().Mul(quantity)
	proceeds := proceedsPerShare.Mul(quantity)
	rec := SaleAllocationRecord{
		LotID:        l.id,
		SaleID:       saleID,
		Date:         on,
		QuantitySold: quantity,
		CostBasis:    cost,
		Proceeds:     proceeds,
		GainLoss:     proceeds.Sub(cost),
		HoldingDays:  on.DaysSince(l.acquired),
	}
	l.remaining = l.remaining.Sub(quantity)
	l.sold = l.sold.Add(quantity)
	l.allocations = append(l.allocations, rec)
	return rec
}

// rescale applies a corporate action: quantities are multiplied by the
// ratio, the per-share price is divided by it, and the total cost basis is
// left untouched. Past allocation records keep their as-traded quantities;
// the sold counter is rescaled so conservation holds in current units.
func (l *Lot) rescale(rec CorporateActionRecord) {
	l.original = l.original.Mul(rec.Ratio)
	l.remaining = l.remaining.Mul(rec.Ratio)
	l.sold = l.sold.Mul(rec.Ratio)
	l.pricePerShare = l.pricePerShare.Div(rec.Ratio)
	l.adjustments = append(l.adjustments, rec)
}

// MarshalJSON implements the json.Marshaler interface for Lot.
func (l *Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", l.id)
	w.Append("account", l.account)
	w.Append("symbol", l.symbol)
	w.Append("acquired", l.acquired)
	w.Append("provenance", l.provenance.String())
	w.Append("original", l.original)
	w.Append("remaining", l.remaining)
	w.Append("cost", l.costBasis)
	w.Append("price", l.pricePerShare.exact())
	w.Append("status", l.Status().String())
	w.Optional("lowConfidence", l.lowConfidence)
	if len(l.adjustments) > 0 {
		w.Append("adjustments", l.adjustments)
	}
	if len(l.allocations) > 0 {
		w.Append("allocations", l.allocations)
	}
	return w.MarshalJSON()
}
