package taxlot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// This file persists transactions and lot books as JSONL, one record per
// line, in a way that is human-readable and git-friendly. The engine itself
// never touches a file; callers hand in readers and writers.

// DecodeTransactions reads a JSONL stream of transactions and returns them
// sorted by date. The sort is stable: rows on the same day keep the order
// the broker exported them in.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var transactions []Transaction
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("could not parse transaction line %q: %w", string(line), err)
		}
		transactions = append(transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	slices.SortStableFunc(transactions, func(a, b Transaction) int { return compareDates(a.Date, b.Date) })
	return transactions, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	jsonData, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeTransactions reorders transactions by date and persists them to an
// io.Writer in JSONL format.
func EncodeTransactions(w io.Writer, transactions []Transaction) error {
	ordered := slices.Clone(transactions)
	slices.SortStableFunc(ordered, func(a, b Transaction) int { return compareDates(a.Date, b.Date) })
	for _, tx := range ordered {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// EncodeLotBook persists a lot book to an io.Writer in JSONL format, one lot
// per line in insertion order, so encoding the same book always produces the
// same bytes.
func EncodeLotBook(w io.Writer, book *LotBook) error {
	for lot := range book.All() {
		jsonData, err := json.Marshal(lot)
		if err != nil {
			return fmt.Errorf("failed to marshal lot %q: %w", lot.id, err)
		}
		if _, err := w.Write(append(jsonData, '\n')); err != nil {
			return fmt.Errorf("failed to write lot %q: %w", lot.id, err)
		}
	}
	return nil
}

// jlot is the object read from a lot-book file using the json parser.
type jlot struct {
	ID            string                  `json:"id"`
	Account       string                  `json:"account"`
	Symbol        string                  `json:"symbol"`
	Acquired      Date                    `json:"acquired"`
	Provenance    string                  `json:"provenance"`
	Original      Quantity                `json:"original"`
	Remaining     Quantity                `json:"remaining"`
	Cost          Money                   `json:"cost"`
	Price         Money                   `json:"price"`
	LowConfidence bool                    `json:"lowConfidence"`
	Adjustments   []CorporateActionRecord `json:"adjustments"`
	Allocations   []SaleAllocationRecord  `json:"allocations"`
}

// DecodeLotBook reads a JSONL stream of lots and rebuilds the book. The lot
// invariants are re-checked on the way in, so a hand-edited file cannot
// smuggle in an inconsistent lot.
func DecodeLotBook(r io.Reader) (*LotBook, error) {
	book := NewLotBook()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var js jlot
		if err := json.Unmarshal(line, &js); err != nil {
			return nil, fmt.Errorf("could not parse lot line %q: %w", string(line), err)
		}
		lot, err := lotFromFile(js)
		if err != nil {
			return nil, fmt.Errorf("invalid lot %q in data file: %w", js.ID, err)
		}
		if err := book.Add(lot); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return book, nil
}

// lotFromFile rebuilds a lot from its persisted form, re-deriving what is
// derivable and rejecting quantities that violate conservation.
func lotFromFile(js jlot) (*Lot, error) {
	provenance := TransactionDerived
	if js.Provenance == SnapshotDerived.String() {
		provenance = SnapshotDerived
	}
	lot, err := newLot(js.ID, js.Account, js.Symbol, js.Acquired, js.Original, js.Cost, provenance)
	if err != nil {
		return nil, err
	}
	if js.Remaining.IsNegative() || js.Remaining.GreaterThan(js.Original) {
		return nil, fmt.Errorf("remaining %s outside [0, %s]", js.Remaining, js.Original)
	}
	lot.remaining = js.Remaining
	lot.sold = js.Original.Sub(js.Remaining)
	lot.pricePerShare = js.Price
	lot.lowConfidence = js.LowConfidence
	lot.adjustments = js.Adjustments
	lot.allocations = js.Allocations
	return lot, nil
}
