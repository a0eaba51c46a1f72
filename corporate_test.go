package taxlot

import (
	"errors"
	"testing"
)

func TestNewSplitAction(t *testing.T) {
	action, err := NewSplitAction(day("2021-06-15"), Q(2))
	if err != nil {
		t.Fatalf("NewSplitAction() failed: %v", err)
	}
	if action.Kind != Split {
		t.Errorf("Kind = %v for ratio 2, want Split", action.Kind)
	}

	action, err = NewSplitAction(day("2021-06-15"), Q(0.5))
	if err != nil {
		t.Fatalf("NewSplitAction() failed: %v", err)
	}
	if action.Kind != ReverseSplit {
		t.Errorf("Kind = %v for ratio 0.5, want ReverseSplit", action.Kind)
	}
}

func TestNewSplitAction_RejectsNonPositiveRatio(t *testing.T) {
	for _, ratio := range []Quantity{Q(0), Q(-2)} {
		_, err := NewSplitAction(day("2021-06-15"), ratio)
		var invalid *InvalidRatioError
		if !errors.As(err, &invalid) {
			t.Errorf("NewSplitAction(ratio=%s) error = %v, want InvalidRatioError", ratio, err)
		}
	}
}

func TestApplySplit(t *testing.T) {
	lot := mustLot(t, "l1", "2021-01-01", 10, 1000)
	book := mustBook(t, lot)

	action, err := NewSplitAction(day("2021-06-15"), Q(2))
	if err != nil {
		t.Fatalf("NewSplitAction() failed: %v", err)
	}
	adjusted, err := ApplySplit(book, "broker", "ACME", action)
	if err != nil {
		t.Fatalf("ApplySplit() failed: %v", err)
	}
	if adjusted != 1 {
		t.Fatalf("adjusted %d lots, want 1", adjusted)
	}

	if want := Q(20); !lot.OriginalQuantity().Equal(want) {
		t.Errorf("OriginalQuantity() = %s, want %s", lot.OriginalQuantity(), want)
	}
	if want := Q(20); !lot.RemainingQuantity().Equal(want) {
		t.Errorf("RemainingQuantity() = %s, want %s", lot.RemainingQuantity(), want)
	}
	if want := USD(50); !lot.PricePerShare().Equal(want) {
		t.Errorf("PricePerShare() = %s, want %s", lot.PricePerShare(), want)
	}
	// Total cost basis is invariant under a split.
	if want := USD(1000); !lot.CostBasis().Equal(want) {
		t.Errorf("CostBasis() = %s, want %s", lot.CostBasis(), want)
	}
	if got := len(lot.Adjustments()); got != 1 {
		t.Errorf("lot carries %d adjustment records, want 1", got)
	}
	checkConservation(t, lot)
}

func TestApplySplit_RoundTrip(t *testing.T) {
	// A 2:1 split followed by a 1:2 reverse split restores quantities and
	// price exactly.
	lot := mustLot(t, "l1", "2021-01-01", 10, 1000)
	book := mustBook(t, lot)
	lot.consume("s1", day("2021-03-01"), Q(4), USD(150))

	forward, _ := NewSplitAction(day("2021-06-15"), Q(2))
	if _, err := ApplySplit(book, "broker", "ACME", forward); err != nil {
		t.Fatalf("ApplySplit(2) failed: %v", err)
	}
	reverse, _ := NewSplitAction(day("2021-09-15"), Q(0.5))
	if _, err := ApplySplit(book, "broker", "ACME", reverse); err != nil {
		t.Fatalf("ApplySplit(0.5) failed: %v", err)
	}

	if want := Q(10); !lot.OriginalQuantity().Equal(want) {
		t.Errorf("OriginalQuantity() = %s, want %s", lot.OriginalQuantity(), want)
	}
	if want := Q(6); !lot.RemainingQuantity().Equal(want) {
		t.Errorf("RemainingQuantity() = %s, want %s", lot.RemainingQuantity(), want)
	}
	if want := USD(100); !lot.PricePerShare().Equal(want) {
		t.Errorf("PricePerShare() = %s, want %s", lot.PricePerShare(), want)
	}
	if got := len(lot.Adjustments()); got != 2 {
		t.Errorf("lot carries %d adjustment records, want 2", got)
	}
	checkConservation(t, lot)
}

func TestApplySplit_PreSplitSaleStaysAsTraded(t *testing.T) {
	lot := mustLot(t, "l1", "2021-01-01", 10, 1000)
	book := mustBook(t, lot)
	lot.consume("s1", day("2021-03-01"), Q(4), USD(150))

	action, _ := NewSplitAction(day("2021-06-15"), Q(2))
	if _, err := ApplySplit(book, "broker", "ACME", action); err != nil {
		t.Fatalf("ApplySplit() failed: %v", err)
	}

	// The allocation record keeps the quantity as traded; the lot's sold
	// counter is restated in post-split units so conservation still holds.
	if want := Q(4); !lot.Allocations()[0].QuantitySold.Equal(want) {
		t.Errorf("recorded QuantitySold = %s, want %s", lot.Allocations()[0].QuantitySold, want)
	}
	if want := Q(8); !lot.SoldQuantity().Equal(want) {
		t.Errorf("SoldQuantity() = %s, want %s", lot.SoldQuantity(), want)
	}
	if want := Q(12); !lot.RemainingQuantity().Equal(want) {
		t.Errorf("RemainingQuantity() = %s, want %s", lot.RemainingQuantity(), want)
	}
	if got := lot.SoldQuantity().Add(lot.RemainingQuantity()); !got.Equal(lot.OriginalQuantity()) {
		t.Errorf("sold + remaining = %s, want original %s", got, lot.OriginalQuantity())
	}
}

func TestApplySplit_EffectiveDateCutoff(t *testing.T) {
	before := mustLot(t, "l1", "2021-01-01", 10, 1000)
	after := mustLot(t, "l2", "2021-09-01", 10, 3000)
	book := mustBook(t, before, after)

	action, _ := NewSplitAction(day("2021-06-15"), Q(2))
	adjusted, err := ApplySplit(book, "broker", "ACME", action)
	if err != nil {
		t.Fatalf("ApplySplit() failed: %v", err)
	}
	if adjusted != 1 {
		t.Errorf("adjusted %d lots, want 1", adjusted)
	}
	if want := Q(20); !before.RemainingQuantity().Equal(want) {
		t.Errorf("pre-split lot remaining = %s, want %s", before.RemainingQuantity(), want)
	}
	if want := Q(10); !after.RemainingQuantity().Equal(want) {
		t.Errorf("post-split lot remaining = %s, want %s", after.RemainingQuantity(), want)
	}
}
