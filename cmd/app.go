// Package cmd implements the CLI application to manage tax lots.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "journal")
	c.Register(&sellCmd{}, "journal")
	c.Register(&splitCmd{}, "journal")
	c.Register(&fmtCmd{}, "journal")

	c.Register(&replayCmd{}, "lots")
	c.Register(&bootstrapCmd{}, "lots")
	c.Register(&lotsCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")

	c.Register(&AssistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var journalFile = flag.String("journal-file", "transactions.jsonl", "Path to the transaction journal file (JSONL format)")
var bookFile = flag.String("book-file", "lots.jsonl", "Path to the lot book file (JSONL format)")

// DecodeJournal reads the transaction journal from the app journal file.
func DecodeJournal() ([]taxlot.Transaction, error) {
	f, err := os.Open(*journalFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, journal does not exist, starting from an empty one")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open journal file %q: %w", *journalFile, err)
	}
	defer f.Close()
	return taxlot.DecodeTransactions(f)
}

// DecodeBook reads the lot book from the app book file.
func DecodeBook() (*taxlot.LotBook, error) {
	f, err := os.Open(*bookFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, book does not exist, starting from an empty one")
		return taxlot.NewLotBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open book file %q: %w", *bookFile, err)
	}
	defer f.Close()
	return taxlot.DecodeLotBook(f)
}

// EncodeBook writes the lot book to the app book file.
func EncodeBook(book *taxlot.LotBook) error {
	f, err := os.Create(*bookFile)
	if err != nil {
		return fmt.Errorf("could not create book file %q: %w", *bookFile, err)
	}
	defer f.Close()
	return taxlot.EncodeLotBook(f, book)
}

// EncodeTransaction appends a single transaction into the app journal file.
func EncodeTransaction(tx taxlot.Transaction) subcommands.ExitStatus {
	filename := *journalFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := taxlot.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}
