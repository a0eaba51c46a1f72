package taxlot

import (
	"errors"
	"testing"
)

func TestNewLot_RejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name     string
		quantity Quantity
		cost     Money
	}{
		{name: "zero quantity", quantity: Q(0), cost: USD(100)},
		{name: "negative quantity", quantity: Q(-5), cost: USD(100)},
		{name: "negative cost", quantity: Q(10), cost: USD(-100)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newLot("l1", "broker", "ACME", day("2021-01-01"), tc.quantity, tc.cost, TransactionDerived)
			var invalid *InvalidAcquisitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("newLot() error = %v, want InvalidAcquisitionError", err)
			}
		})
	}
}

func TestLot_PricePerShareFrozenAtCreation(t *testing.T) {
	lot := mustLot(t, "l1", "2021-01-01", 10, 1500)

	if want := USD(150); !lot.PricePerShare().Equal(want) {
		t.Errorf("PricePerShare() = %s, want %s", lot.PricePerShare(), want)
	}

	// A partial sale must not move the per-share cost.
	lot.consume("s1", day("2021-06-01"), Q(4), USD(200))
	if want := USD(150); !lot.PricePerShare().Equal(want) {
		t.Errorf("PricePerShare() after sale = %s, want %s", lot.PricePerShare(), want)
	}
}

func TestLot_StatusFollowsRemainingQuantity(t *testing.T) {
	lot := mustLot(t, "l1", "2021-01-01", 10, 1000)

	if got := lot.Status(); got != Open {
		t.Fatalf("Status() = %v, want Open", got)
	}

	lot.consume("s1", day("2021-02-01"), Q(4), USD(110))
	if got := lot.Status(); got != Partial {
		t.Fatalf("Status() after partial sale = %v, want Partial", got)
	}
	checkConservation(t, lot)

	lot.consume("s2", day("2021-03-01"), Q(6), USD(120))
	if got := lot.Status(); got != Closed {
		t.Fatalf("Status() after full sale = %v, want Closed", got)
	}
	checkConservation(t, lot)
}

func TestLot_ConsumeRecordsOriginalPerShareCost(t *testing.T) {
	lot := mustLot(t, "l1", "2021-01-01", 10, 1000)

	// First consume part of the lot, then check that a second allocation is
	// still costed at the original $100/share, not a remaining-adjusted rate.
	lot.consume("s1", day("2021-02-01"), Q(5), USD(300))
	rec := lot.consume("s2", day("2021-04-01"), Q(2), USD(300))

	if want := USD(200); !rec.CostBasis.Equal(want) {
		t.Errorf("CostBasis = %s, want %s", rec.CostBasis, want)
	}
	if want := USD(600); !rec.Proceeds.Equal(want) {
		t.Errorf("Proceeds = %s, want %s", rec.Proceeds, want)
	}
	if want := USD(400); !rec.GainLoss.Equal(want) {
		t.Errorf("GainLoss = %s, want %s", rec.GainLoss, want)
	}
	if want := 90; rec.HoldingDays != want {
		t.Errorf("HoldingDays = %d, want %d", rec.HoldingDays, want)
	}
}

func TestLot_ConsumePanicsBeyondRemaining(t *testing.T) {
	lot := mustLot(t, "l1", "2021-01-01", 10, 1000)

	defer func() {
		if recover() == nil {
			t.Error("consume() beyond remaining quantity did not panic")
		}
	}()
	lot.consume("s1", day("2021-02-01"), Q(11), USD(100))
}

func TestLot_SnapshotWithoutCostIsLowConfidence(t *testing.T) {
	lot, err := newLot("l1", "broker", "ACME", day("2021-01-01"), Q(10), Money{}, SnapshotDerived)
	if err != nil {
		t.Fatalf("newLot() failed: %v", err)
	}
	if !lot.LowConfidence() {
		t.Error("LowConfidence() = false for a zero-cost snapshot lot, want true")
	}

	funded, err := newLot("l2", "broker", "ACME", day("2021-01-01"), Q(10), USD(1000), SnapshotDerived)
	if err != nil {
		t.Fatalf("newLot() failed: %v", err)
	}
	if funded.LowConfidence() {
		t.Error("LowConfidence() = true for a snapshot lot with cost basis, want false")
	}
}
