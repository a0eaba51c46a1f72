package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `lots fmt

  Validates and formats the journal file. This command reads all
  transactions, sorts them by date, and writes them back in a canonical
  JSONL format, so the file diffs cleanly under version control.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	transactions, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load journal: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(transactions) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no transactions found to format.")
		return subcommands.ExitSuccess
	}

	out, err := os.Create(*journalFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := taxlot.EncodeTransactions(out, transactions); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing journal file %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d transactions in %s.\n", len(transactions), *journalFile)
	return subcommands.ExitSuccess
}
