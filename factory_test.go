package taxlot

import (
	"errors"
	"testing"
)

func TestLotsFromTransactions(t *testing.T) {
	transactions := []Transaction{
		// Out of date order on purpose; the factory must sort.
		buy("t2", "ACME", "2021-06-01", 5, 1250),
		buy("t1", "ACME", "2021-01-01", 10, 1000),
		sell("t3", "ACME", "2021-07-01", 3, 900),           // not an acquisition
		buy("t4", "OTHER", "2021-02-01", 7, 700),           // wrong symbol
		NewTransaction("t5", "broker", "ACME", day("2021-08-01"), "dividend", Q(0), Money{}, USD(12)), // neutral
	}

	lots, err := LotsFromTransactions("broker", "ACME", transactions)
	if err != nil {
		t.Fatalf("LotsFromTransactions() failed: %v", err)
	}
	if len(lots) != 2 {
		t.Fatalf("got %d lots, want 2", len(lots))
	}
	if got := lots[0]; got.ID() != "lot:t1" || !got.OriginalQuantity().Equal(Q(10)) || !got.CostBasis().Equal(USD(1000)) {
		t.Errorf("first lot = %s %s @ %s, want lot:t1 10 @ 1000", got.ID(), got.OriginalQuantity(), got.CostBasis())
	}
	if got := lots[1]; got.ID() != "lot:t2" || got.AcquisitionDate() != day("2021-06-01") {
		t.Errorf("second lot = %s acquired %s, want lot:t2 acquired 2021-06-01", got.ID(), got.AcquisitionDate())
	}
	if got := lots[0].PricePerShare(); !got.Equal(USD(100)) {
		t.Errorf("first lot price per share = %s, want 100", got)
	}
	if lots[0].Provenance() != TransactionDerived {
		t.Errorf("Provenance() = %v, want TransactionDerived", lots[0].Provenance())
	}
}

func TestLotsFromTransactions_PriceFallback(t *testing.T) {
	// No amount column: cost basis falls back to quantity x price.
	tx := NewTransaction("t1", "broker", "ACME", day("2021-01-01"), "buy", Q(8), USD(25), Money{})
	lots, err := LotsFromTransactions("broker", "ACME", []Transaction{tx})
	if err != nil {
		t.Fatalf("LotsFromTransactions() failed: %v", err)
	}
	if want := USD(200); !lots[0].CostBasis().Equal(want) {
		t.Errorf("CostBasis() = %s, want %s", lots[0].CostBasis(), want)
	}
}

func TestLotsFromTransactions_RejectsBadAcquisitions(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
	}{
		{name: "zero quantity", tx: buy("t1", "ACME", "2021-01-01", 0, 1000)},
		{name: "negative quantity", tx: buy("t1", "ACME", "2021-01-01", -5, 1000)},
		{name: "no cost figure", tx: NewTransaction("t1", "broker", "ACME", day("2021-01-01"), "buy", Q(10), Money{}, Money{})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LotsFromTransactions("broker", "ACME", []Transaction{tc.tx})
			var invalid *InvalidAcquisitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("LotsFromTransactions() error = %v, want InvalidAcquisitionError", err)
			}
			if invalid.TransactionID != "t1" {
				t.Errorf("TransactionID = %q, want t1", invalid.TransactionID)
			}
		})
	}
}

func TestLotsFromTransactions_EmptyHistory(t *testing.T) {
	lots, err := LotsFromTransactions("broker", "ACME", nil)
	if err != nil {
		t.Fatalf("LotsFromTransactions() on empty history failed: %v", err)
	}
	if len(lots) != 0 {
		t.Errorf("got %d lots from empty history, want 0", len(lots))
	}
}

func TestLotsFromTransactions_FallbackID(t *testing.T) {
	transactions := []Transaction{
		buy("", "ACME", "2021-01-01", 10, 1000),
		buy("", "ACME", "2021-02-01", 5, 600),
	}
	lots, err := LotsFromTransactions("broker", "ACME", transactions)
	if err != nil {
		t.Fatalf("LotsFromTransactions() failed: %v", err)
	}
	if got, want := lots[0].ID(), "lot:broker/ACME#1"; got != want {
		t.Errorf("first lot id = %q, want %q", got, want)
	}
	if got, want := lots[1].ID(), "lot:broker/ACME#2"; got != want {
		t.Errorf("second lot id = %q, want %q", got, want)
	}
}

func TestLotsFromSnapshot(t *testing.T) {
	snapshot := Snapshot{
		Account: "broker",
		Date:    day("2022-01-01"),
		Positions: []SnapshotPosition{
			{Symbol: "ACME", Quantity: Q(10), CostBasis: USD(1000)},
			{Symbol: "ZETA", Quantity: Q(4)}, // cost basis unknown
		},
	}

	lots, err := LotsFromSnapshot(snapshot)
	if err != nil {
		t.Fatalf("LotsFromSnapshot() failed: %v", err)
	}
	if len(lots) != 2 {
		t.Fatalf("got %d lots, want 2", len(lots))
	}
	if got := lots[0]; got.Provenance() != SnapshotDerived || got.LowConfidence() {
		t.Errorf("costed position: provenance %v lowConfidence %v, want SnapshotDerived and false", got.Provenance(), got.LowConfidence())
	}
	if got := lots[1]; !got.LowConfidence() || !got.CostBasis().IsZero() {
		t.Errorf("costless position: lowConfidence %v cost %s, want true and zero", got.LowConfidence(), got.CostBasis())
	}
	// Snapshot date stands in for the acquisition date.
	if lots[0].AcquisitionDate() != day("2022-01-01") {
		t.Errorf("AcquisitionDate() = %s, want snapshot date", lots[0].AcquisitionDate())
	}
	if got, want := lots[0].ID(), "lot:broker/ACME@2022-01-01#1"; got != want {
		t.Errorf("lot id = %q, want %q", got, want)
	}
}
