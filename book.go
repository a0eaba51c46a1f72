package taxlot

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// bookKey identifies one lot ledger: lots never mix across accounts or symbols.
type bookKey struct {
	account string
	symbol  string
}

// LotBook is the ledger of lots, keyed by (account, symbol). Within a key,
// lots keep their insertion order, which is the tie-break order for every
// allocation method. Lots are never deleted: closed lots stay for audit.
//
// A LotBook holds no lock. Any read-modify-write sequence on one
// (account, symbol) must be serialized by the caller; concurrent mutation of
// the same lot set would lose updates and break quantity conservation.
type LotBook struct {
	lots  []*Lot
	index map[bookKey][]*Lot
	byID  map[string]*Lot
}

// NewLotBook creates an empty lot book.
func NewLotBook() *LotBook {
	return &LotBook{
		index: make(map[bookKey][]*Lot),
		byID:  make(map[string]*Lot),
	}
}

// Add appends a lot to the book. Lot IDs are unique within a book.
func (b *LotBook) Add(l *Lot) error {
	if _, exists := b.byID[l.id]; exists {
		return fmt.Errorf("lot %q already recorded", l.id)
	}
	key := bookKey{l.account, l.symbol}
	b.lots = append(b.lots, l)
	b.index[key] = append(b.index[key], l)
	b.byID[l.id] = l
	return nil
}

// Lot returns the lot with the given id, or nil if unknown.
func (b *LotBook) Lot(id string) *Lot { return b.byID[id] }

// Lots returns the authoritative, insertion-ordered lot set for one
// (account, symbol). The engines take this one lookup and work on it; they
// never re-query mid-operation, so sequential adjustments always see a
// consistent view.
func (b *LotBook) Lots(account, symbol string) []*Lot {
	out := b.index[bookKey{account, symbol}]
	return slices.Clone(out)
}

// HasLots reports whether any lot exists for the (account, symbol). Callers
// use it to guarantee the at-most-once snapshot bootstrap.
func (b *LotBook) HasLots(account, symbol string) bool {
	return len(b.index[bookKey{account, symbol}]) > 0
}

// Position returns the total remaining quantity for one (account, symbol).
func (b *LotBook) Position(account, symbol string) Quantity {
	var total Quantity
	for _, l := range b.index[bookKey{account, symbol}] {
		total = total.Add(l.remaining)
	}
	return total
}

// Len returns the number of lots in the book.
func (b *LotBook) Len() int { return len(b.lots) }

// All iterates over every lot in insertion order.
func (b *LotBook) All() iter.Seq[*Lot] {
	return func(yield func(*Lot) bool) {
		for _, l := range b.lots {
			if !yield(l) {
				return
			}
		}
	}
}

// Keys iterates over the (account, symbol) pairs of the book in a stable,
// sorted order.
func (b *LotBook) Keys() iter.Seq2[string, string] {
	keys := slices.Collect(maps.Keys(b.index))
	slices.SortFunc(keys, func(a, c bookKey) int {
		if a.account != c.account {
			if a.account < c.account {
				return -1
			}
			return 1
		}
		if a.symbol < c.symbol {
			return -1
		}
		if a.symbol > c.symbol {
			return 1
		}
		return 0
	})
	return func(yield func(string, string) bool) {
		for _, k := range keys {
			if !yield(k.account, k.symbol) {
				return
			}
		}
	}
}
