package taxlot

import "testing"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to parse a date from const
func day(s string) Date { return MustParse(s) }

// mustLot creates a transaction-derived lot or fails the test.
func mustLot(t *testing.T, id string, acquired string, quantity float64, cost float64) *Lot {
	t.Helper()
	lot, err := newLot(id, "broker", "ACME", day(acquired), Q(quantity), USD(cost), TransactionDerived)
	if err != nil {
		t.Fatalf("newLot(%q) failed: %v", id, err)
	}
	return lot
}

// mustBook builds a book from lots or fails the test.
func mustBook(t *testing.T, lots ...*Lot) *LotBook {
	t.Helper()
	book := NewLotBook()
	for _, lot := range lots {
		if err := book.Add(lot); err != nil {
			t.Fatalf("Add(%q) failed: %v", lot.ID(), err)
		}
	}
	return book
}

// buy is a helper for test to create an acquisition transaction.
func buy(id, symbol, on string, quantity, amount float64) Transaction {
	return NewTransaction(id, "broker", symbol, day(on), "buy", Q(quantity), Money{}, USD(amount))
}

// sell is a helper for test to create a disposition transaction.
func sell(id, symbol, on string, quantity, amount float64) Transaction {
	return NewTransaction(id, "broker", symbol, day(on), "sell", Q(quantity), Money{}, USD(amount))
}

// checkConservation verifies that for a lot the allocated quantities and the
// remaining quantity still sum to the original quantity.
func checkConservation(t *testing.T, lot *Lot) {
	t.Helper()
	var allocated Quantity
	for _, rec := range lot.Allocations() {
		allocated = allocated.Add(rec.QuantitySold)
	}
	if got := allocated.Add(lot.RemainingQuantity()); !got.Equal(lot.OriginalQuantity()) {
		t.Errorf("lot %s: allocated %s + remaining %s = %s, want original %s",
			lot.ID(), allocated, lot.RemainingQuantity(), got, lot.OriginalQuantity())
	}
	if got := lot.SoldQuantity().Add(lot.RemainingQuantity()); !got.Equal(lot.OriginalQuantity()) {
		t.Errorf("lot %s: sold %s + remaining %s = %s, want original %s",
			lot.ID(), lot.SoldQuantity(), lot.RemainingQuantity(), got, lot.OriginalQuantity())
	}
}
