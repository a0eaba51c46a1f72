package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

// sellCmd reuses the buy flags: a sale row carries the same columns.
type sellCmd struct {
	buyCmd
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a disposition in the journal" }
func (*sellCmd) Usage() string {
	return `lots sell -s <symbol> -q <quantity> [-amount <total> | -p <price>] [-a <account>] [-d <date>]

  Appends a disposition to the transaction journal. The sale is allocated
  against lots on the next 'replay'.
`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, status := c.transaction("sell")
	if status != subcommands.ExitSuccess {
		return status
	}
	return EncodeTransaction(tx)
}
