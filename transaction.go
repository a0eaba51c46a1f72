package taxlot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category classifies a transaction's effect on the lot ledger.
type Category int

const (
	// Neutral transactions (dividends, fees, cash movements) never touch lots.
	Neutral Category = iota
	// Acquisition transactions create lots.
	Acquisition
	// Disposition transactions consume lots.
	Disposition
	// CorporateAction transactions rescale lots.
	CorporateAction
)

func (c Category) String() string {
	switch c {
	case Acquisition:
		return "acquisition"
	case Disposition:
		return "disposition"
	case CorporateAction:
		return "corporate-action"
	default:
		return "neutral"
	}
}

// actionCategories is the static action-name to category mapping. Action
// names are the lowercase labels brokers use in their export files; anything
// not listed here is Neutral.
var actionCategories = map[string]Category{
	"buy":                   Acquisition,
	"purchase":              Acquisition,
	"reinvest":              Acquisition,
	"dividend reinvestment": Acquisition,
	"transfer in":           Acquisition,
	"sell":                  Disposition,
	"sale":                  Disposition,
	"transfer out":          Disposition,
	"split":                 CorporateAction,
	"reverse split":         CorporateAction,
	"dividend":              Neutral,
	"interest":              Neutral,
	"fee":                   Neutral,
	"tax":                   Neutral,
	"deposit":               Neutral,
	"withdrawal":            Neutral,
}

// CategoryOf returns the category for a broker action name. Unknown actions
// are Neutral, so an unrecognized row can never corrupt the lot ledger.
func CategoryOf(action string) Category {
	return actionCategories[strings.ToLower(strings.TrimSpace(action))]
}

// Transaction is one immutable row of brokerage history. It is recorded
// once and never updated; the lot engines only ever read it.
type Transaction struct {
	ID       string   // broker-assigned or import-assigned identifier
	Account  string   // brokerage account the row belongs to
	Symbol   string   // security ticker
	Date     Date     // trade date
	Action   string   // raw broker action name, e.g. "buy"
	Quantity Quantity // shares traded; the ratio for corporate actions
	Price    Money    // per-share price as reported
	Amount   Money    // total cash amount as reported; may be signed

	category Category // derived once from Action
}

// NewTransaction creates a transaction and derives its category from the
// action name.
func NewTransaction(id, account, symbol string, day Date, action string, quantity Quantity, price, amount Money) Transaction {
	return Transaction{
		ID:       id,
		Account:  account,
		Symbol:   symbol,
		Date:     day,
		Action:   action,
		Quantity: quantity,
		Price:    price,
		Amount:   amount,
		category: CategoryOf(action),
	}
}

// Category returns the category derived from the action name at creation.
func (t Transaction) Category() Category { return t.category }

func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID && t.Account == o.Account && t.Symbol == o.Symbol &&
		t.Date == o.Date && t.Action == o.Action &&
		t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price) && t.Amount.Equal(o.Amount)
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s x %s", t.Date, t.Action, t.Symbol, t.Quantity, t.Price)
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("account", t.Account)
	w.Optional("symbol", t.Symbol)
	w.Append("date", t.Date)
	w.Append("action", t.Action)
	w.Optional("quantity", t.Quantity)
	w.Optional("price", t.Price)
	w.Optional("amount", t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
// The category is re-derived from the action name, never read from the file.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string   `json:"id"`
		Account  string   `json:"account"`
		Symbol   string   `json:"symbol"`
		Date     Date     `json:"date"`
		Action   string   `json:"action"`
		Quantity Quantity `json:"quantity"`
		Price    Money    `json:"price"`
		Amount   Money    `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = NewTransaction(temp.ID, temp.Account, temp.Symbol, temp.Date, temp.Action, temp.Quantity, temp.Price, temp.Amount)
	return nil
}
