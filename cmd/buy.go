package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	id       string
	account  string
	symbol   string
	date     string
	quantity float64
	price    float64
	amount   float64
	currency string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record an acquisition in the journal" }
func (*buyCmd) Usage() string {
	return `lots buy -s <symbol> -q <quantity> [-amount <total> | -p <price>] [-a <account>] [-d <date>]

  Appends an acquisition to the transaction journal. The lot it creates
  appears in the book after the next 'replay'.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction identifier. A positional one is derived when empty.")
	f.StringVar(&c.account, "a", "default", "Account the security is held in.")
	f.StringVar(&c.symbol, "s", "", "Security ticker symbol.")
	f.StringVar(&c.date, "d", taxlot.Today().String(), "Trade date.")
	f.Float64Var(&c.quantity, "q", 0, "Quantity of shares acquired.")
	f.Float64Var(&c.price, "p", 0, "Per-share price.")
	f.Float64Var(&c.amount, "amount", 0, "Total cash amount. Defaults to quantity x price.")
	f.StringVar(&c.currency, "c", "USD", "Currency of price and amount.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, status := c.transaction("buy")
	if status != subcommands.ExitSuccess {
		return status
	}
	return EncodeTransaction(tx)
}

// transaction validates the common flags and builds the journal row.
func (c *buyCmd) transaction(action string) (taxlot.Transaction, subcommands.ExitStatus) {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "-s <symbol> is required")
		return taxlot.Transaction{}, subcommands.ExitUsageError
	}
	if c.quantity <= 0 {
		fmt.Fprintln(os.Stderr, "-q <quantity> must be positive")
		return taxlot.Transaction{}, subcommands.ExitUsageError
	}
	if c.amount == 0 && c.price == 0 {
		fmt.Fprintln(os.Stderr, "one of -amount or -p is required")
		return taxlot.Transaction{}, subcommands.ExitUsageError
	}
	on, err := taxlot.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return taxlot.Transaction{}, subcommands.ExitUsageError
	}
	var price, amount taxlot.Money
	if c.price != 0 {
		price = taxlot.M(c.price, c.currency)
	}
	if c.amount != 0 {
		amount = taxlot.M(c.amount, c.currency)
	}
	return taxlot.NewTransaction(c.id, c.account, c.symbol, on, action, taxlot.Q(c.quantity), price, amount), subcommands.ExitSuccess
}
