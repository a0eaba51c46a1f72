package taxlot

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// SymbolError is one failure scoped to the (account, symbol) that caused it.
type SymbolError struct {
	Account string
	Symbol  string
	Err     error
}

func (e SymbolError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Account, e.Symbol, e.Err)
}

func (e SymbolError) Unwrap() error { return e.Err }

// BatchReport accumulates the outcome of replaying many symbols: every
// allocation made, every oversell warning, and every per-symbol error. No
// failure is silently discarded; a symbol's error stops that symbol only.
type BatchReport struct {
	Symbols int // number of (account, symbol) pairs processed
	Results []*AllocationResult
	Errors  []SymbolError
}

// Err joins all per-symbol errors into one, or returns nil when every
// symbol replayed cleanly.
func (r *BatchReport) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Warnings returns the allocations that could not be fully filled.
func (r *BatchReport) Warnings() []*AllocationResult {
	var out []*AllocationResult
	for _, res := range r.Results {
		if res.Warning != nil {
			out = append(out, res)
		}
	}
	return out
}

// Replay builds a lot book from a full transaction history. Transactions
// are grouped by (account, symbol) and each group is replayed in date order:
// acquisitions create lots, dispositions are allocated under the given
// method, and corporate actions rescale the lots created so far. Neutral
// rows are skipped.
//
// Failures are isolated per symbol: an error while replaying one
// (account, symbol) is recorded in the report and the remaining symbols are
// still processed. Groups are replayed in sorted key order, so the same
// input always yields the same book and the same report.
func Replay(transactions []Transaction, method AllocationMethod, tracer Tracer) (*LotBook, *BatchReport) {
	if tracer == nil {
		tracer = Discard
	}
	book := NewLotBook()
	report := &BatchReport{}

	groups := make(map[bookKey][]Transaction)
	for _, tx := range transactions {
		if tx.Category() == Neutral {
			continue
		}
		key := bookKey{tx.Account, tx.Symbol}
		groups[key] = append(groups[key], tx)
	}

	keys := slices.SortedFunc(maps.Keys(groups), func(a, b bookKey) int {
		if a.account != b.account {
			if a.account < b.account {
				return -1
			}
			return 1
		}
		if a.symbol != b.symbol {
			if a.symbol < b.symbol {
				return -1
			}
			return 1
		}
		return 0
	})

	for _, key := range keys {
		report.Symbols++
		if err := replaySymbol(book, key, groups[key], method, report, tracer); err != nil {
			tracer.Event("replay-symbol-failed", "account", key.account, "symbol", key.symbol, "err", err)
			report.Errors = append(report.Errors, SymbolError{Account: key.account, Symbol: key.symbol, Err: err})
		}
	}
	return book, report
}

// replaySymbol replays one (account, symbol) group in date order.
func replaySymbol(book *LotBook, key bookKey, transactions []Transaction, method AllocationMethod, report *BatchReport, tracer Tracer) error {
	ordered := slices.Clone(transactions)
	slices.SortStableFunc(ordered, func(a, b Transaction) int { return compareDates(a.Date, b.Date) })

	seq := 0
	for _, tx := range ordered {
		switch tx.Category() {
		case Acquisition:
			seq++
			lot, err := lotFromAcquisition(tx, seq)
			if err != nil {
				return err
			}
			if err := book.Add(lot); err != nil {
				return err
			}
			tracer.Event("lot-created", "lot", lot.id, "quantity", lot.original)

		case Disposition:
			sale := Sale{
				ID:       tx.ID,
				Account:  tx.Account,
				Symbol:   tx.Symbol,
				Date:     tx.Date,
				Quantity: tx.Quantity.Abs(),
				Amount:   tx.Amount.Abs(),
			}
			result, err := Allocate(book, sale, method)
			if err != nil {
				return err
			}
			report.Results = append(report.Results, result)
			if result.Warning != nil {
				tracer.Event("oversell", "sale", sale.ID, "unfilled", result.Unfilled)
			}

		case CorporateAction:
			// Exports carry the split ratio in the quantity column.
			action, err := NewSplitAction(tx.Date, tx.Quantity)
			if err != nil {
				return err
			}
			adjusted, err := ApplySplit(book, key.account, key.symbol, action)
			if err != nil {
				return err
			}
			tracer.Event("split-applied", "symbol", key.symbol, "ratio", action.Ratio, "lots", adjusted)
		}
	}
	return nil
}

// Bootstrap creates snapshot-derived lots for an account with no transaction
// history and adds them to the book. It enforces the at-most-once rule: a
// position whose (account, symbol) already has lots is rejected, because a
// second bootstrap would duplicate the holding.
func Bootstrap(book *LotBook, snapshot Snapshot) ([]*Lot, error) {
	for _, pos := range snapshot.Positions {
		if book.HasLots(snapshot.Account, pos.Symbol) {
			return nil, fmt.Errorf("cannot bootstrap %s/%s: lots already exist", snapshot.Account, pos.Symbol)
		}
	}
	lots, err := LotsFromSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	for _, lot := range lots {
		if err := book.Add(lot); err != nil {
			return nil, err
		}
	}
	return lots, nil
}
