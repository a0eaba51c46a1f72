package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// bootstrapCmd holds the flags for the 'bootstrap' subcommand.
type bootstrapCmd struct {
	snapshotFile string
}

func (*bootstrapCmd) Name() string { return "bootstrap" }
func (*bootstrapCmd) Synopsis() string {
	return "create lots from a holdings snapshot for an account with no history"
}
func (*bootstrapCmd) Usage() string {
	return `lots bootstrap -f <snapshot.json>

  Creates one lot per snapshot position and adds them to the book. This is
  a one-time operation for accounts whose broker only exports current
  holdings: the snapshot date stands in for the acquisition dates, and
  positions without a cost basis are flagged low-confidence.

  Bootstrapping a holding that already has lots is refused.
`
}

func (c *bootstrapCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshotFile, "f", "", "Path to the snapshot file (JSON).")
}

func (c *bootstrapCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.snapshotFile == "" {
		fmt.Fprintln(os.Stderr, "-f <snapshot.json> is required")
		return subcommands.ExitUsageError
	}
	data, err := os.ReadFile(c.snapshotFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	var snapshot taxlot.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing snapshot %q: %v\n", c.snapshotFile, err)
		return subcommands.ExitFailure
	}

	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	lots, err := taxlot.Bootstrap(book, snapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error bootstrapping: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Bootstrapped %d lots from %s into %s\n", len(lots), c.snapshotFile, *bookFile)
	for _, lot := range lots {
		if lot.LowConfidence() {
			fmt.Fprintf(os.Stderr, "Warning: lot %s has no cost basis, gains on it are approximate\n", lot.ID())
		}
	}
	return subcommands.ExitSuccess
}
