package taxlot

import (
	"fmt"
	"slices"
)

// This file holds the two lot-creation paths. Lots come from acquisition
// transactions whenever any history exists; the snapshot path is a bootstrap
// for accounts that only ever exported a holdings snapshot.

// LotsFromTransactions creates one lot per acquisition found in the
// transactions of one (account, symbol). Transactions are processed in
// ascending date order (ties keep their input order); rows that are not
// acquisitions are ignored. An empty acquisition list yields an empty lot
// set and no error: never having bought a security is a valid state.
//
// The lot's cost basis is the absolute transaction amount; when the export
// carries no amount, quantity x price is used instead. An acquisition with a
// non-positive quantity, or with neither amount nor price, is rejected with
// an InvalidAcquisitionError.
func LotsFromTransactions(account, symbol string, transactions []Transaction) ([]*Lot, error) {
	ordered := slices.Clone(transactions)
	slices.SortStableFunc(ordered, func(a, b Transaction) int {
		if a.Date.Before(b.Date) {
			return -1
		}
		if a.Date.After(b.Date) {
			return 1
		}
		return 0
	})

	var lots []*Lot
	seq := 0
	for _, tx := range ordered {
		if tx.Account != account || tx.Symbol != symbol {
			continue
		}
		if tx.Category() != Acquisition {
			continue
		}
		seq++
		lot, err := lotFromAcquisition(tx, seq)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

// lotFromAcquisition builds a single lot from one acquisition row.
func lotFromAcquisition(tx Transaction, seq int) (*Lot, error) {
	if !tx.Quantity.IsPositive() {
		return nil, &InvalidAcquisitionError{
			TransactionID: tx.ID,
			Reason:        fmt.Sprintf("quantity must be positive, got %s", tx.Quantity),
		}
	}
	cost := tx.Amount.Abs()
	if cost.IsZero() {
		// Some exports omit the amount column; fall back to quantity x price.
		cost = tx.Price.Mul(tx.Quantity)
	}
	if cost.IsZero() {
		return nil, &InvalidAcquisitionError{
			TransactionID: tx.ID,
			Reason:        "no usable cost figure: amount and price are both absent",
		}
	}
	return newLot(lotID(tx, seq), tx.Account, tx.Symbol, tx.Date, tx.Quantity, cost, TransactionDerived)
}

// lotID derives a stable lot identifier. The transaction ID is preferred;
// the positional fallback keeps IDs deterministic when an export has none.
func lotID(tx Transaction, seq int) string {
	if tx.ID != "" {
		return "lot:" + tx.ID
	}
	return fmt.Sprintf("lot:%s/%s#%d", tx.Account, tx.Symbol, seq)
}

// LotsFromSnapshot bootstraps one SnapshotDerived lot per position. It is
// meant only for an (account, symbol) with no transaction history; the
// factory does not check for a prior bootstrap, the caller must guarantee it
// runs at most once per account (see LotBook.HasLots).
//
// The snapshot date stands in for the acquisition date, and a position with
// no reported cost basis yields a zero-cost lot flagged low-confidence:
// holding-period and gain accuracy are forfeited, not faked.
func LotsFromSnapshot(snapshot Snapshot) ([]*Lot, error) {
	var lots []*Lot
	for i, pos := range snapshot.Positions {
		id := fmt.Sprintf("lot:%s/%s@%s#%d", snapshot.Account, pos.Symbol, snapshot.Date, i+1)
		lot, err := newLot(id, snapshot.Account, pos.Symbol, snapshot.Date, pos.Quantity, pos.CostBasis, SnapshotDerived)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, nil
}
