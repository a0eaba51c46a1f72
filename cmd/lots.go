package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
)

// lotsCmd holds the flags for the 'show' subcommand.
type lotsCmd struct {
	account string
	symbol  string
}

func (*lotsCmd) Name() string     { return "show" }
func (*lotsCmd) Synopsis() string { return "display the lots of one holding" }
func (*lotsCmd) Usage() string {
	return `lots show -s <symbol> [-a <account>]

  Displays the lots of one holding: acquisition dates, status, remaining
  quantities, cost basis, and the corporate actions applied to them.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "default", "Account the security is held in.")
	f.StringVar(&c.symbol, "s", "", "Security ticker symbol.")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "-s <symbol> is required")
		return subcommands.ExitUsageError
	}
	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LotsMarkdown(book, c.account, c.symbol))
	return subcommands.ExitSuccess
}
