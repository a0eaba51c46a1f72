package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// splitCmd holds the flags for the 'split' subcommand.
type splitCmd struct {
	id      string
	account string
	symbol  string
	date    string
	ratio   float64
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "record a stock split in the journal" }
func (*splitCmd) Usage() string {
	return `lots split -s <symbol> -r <ratio> [-a <account>] [-d <date>]

  Appends a stock split to the transaction journal. A 2-for-1 split has
  ratio 2; a 1-for-2 reverse split has ratio 0.5. Lots are rescaled on the
  next 'replay'.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction identifier. A positional one is derived when empty.")
	f.StringVar(&c.account, "a", "default", "Account the security is held in.")
	f.StringVar(&c.symbol, "s", "", "Security ticker symbol.")
	f.StringVar(&c.date, "d", taxlot.Today().String(), "Effective date of the split.")
	f.Float64Var(&c.ratio, "r", 0, "New shares per old share.")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "-s <symbol> is required")
		return subcommands.ExitUsageError
	}
	on, err := taxlot.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	// Validate the ratio now so a bad row never reaches the journal.
	if _, err := taxlot.NewSplitAction(on, taxlot.Q(c.ratio)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	action := "split"
	if c.ratio < 1 {
		action = "reverse split"
	}
	tx := taxlot.NewTransaction(c.id, c.account, c.symbol, on, action, taxlot.Q(c.ratio), taxlot.Money{}, taxlot.Money{})
	return EncodeTransaction(tx)
}
