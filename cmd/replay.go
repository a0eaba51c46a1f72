package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/taxlot"
	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
)

// replayCmd holds the flags for the 'replay' subcommand.
type replayCmd struct {
	method  string
	verbose bool
}

func (*replayCmd) Name() string     { return "replay" }
func (*replayCmd) Synopsis() string { return "rebuild the lot book from the transaction journal" }
func (*replayCmd) Usage() string {
	return `lots replay [-method <method>] [-v]

  Rebuilds the lot book from the full transaction journal: acquisitions
  create lots, sales are allocated under the chosen method, and splits
  rescale quantities. The book file is overwritten with the result.

  A failure in one holding never blocks the others; each is reported and
  the rest of the journal is still replayed.
`
}

func (c *replayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "fifo", "Allocation method (fifo, lifo, average)")
	f.BoolVar(&c.verbose, "v", false, "Trace every lot event to stderr.")
}

func (c *replayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	method, err := taxlot.ParseAllocationMethod(c.method)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if method == taxlot.SpecificID {
		fmt.Fprintln(os.Stderr, "specific-id allocation needs per-sale lot choices and cannot drive a full replay")
		return subcommands.ExitUsageError
	}

	transactions, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}

	var tracer taxlot.Tracer
	if c.verbose {
		tracer = &taxlot.LogTracer{Logger: log.New(os.Stderr, "", 0)}
	}

	book, report := taxlot.Replay(transactions, method, tracer)

	for _, result := range report.Warnings() {
		fmt.Fprintf(os.Stderr, "Warning: sale %s of %s left %s unfilled\n",
			result.Sale.ID, result.Sale.Symbol, result.Unfilled)
	}
	for _, symErr := range report.Errors {
		fmt.Fprintf(os.Stderr, "Error: %v\n", symErr)
	}

	if err := EncodeBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Replayed %d holdings into %s (%d lots, %d sales, %d errors)\n",
		report.Symbols, *bookFile, book.Len(), len(report.Results), len(report.Errors))

	for _, result := range report.Results {
		printMarkdown(renderer.AllocationMarkdown(result))
	}

	if len(report.Errors) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
