// Command lots tracks cost basis by tax lot from a plain-text transaction
// journal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/taxlot/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: answered and exited before any flag parsing when the
	// shell is asking, a no-op otherwise.
	completion().Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	files := predict.Files("*")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"journal-file": files,
			"book-file":    files,
		},
		Sub: map[string]*complete.Command{
			"buy":   {Flags: map[string]complete.Predictor{"a": predict.Nothing, "s": predict.Nothing, "d": predict.Nothing, "q": predict.Nothing, "p": predict.Nothing, "amount": predict.Nothing, "c": predict.Set{"USD", "EUR"}}},
			"sell":  {Flags: map[string]complete.Predictor{"a": predict.Nothing, "s": predict.Nothing, "d": predict.Nothing, "q": predict.Nothing, "p": predict.Nothing, "amount": predict.Nothing, "c": predict.Set{"USD", "EUR"}}},
			"split": {Flags: map[string]complete.Predictor{"a": predict.Nothing, "s": predict.Nothing, "d": predict.Nothing, "r": predict.Nothing}},
			"fmt":   {},
			"replay": {Flags: map[string]complete.Predictor{
				"method": predict.Set{"fifo", "lifo", "average"},
				"v":      predict.Nothing,
			}},
			"bootstrap": {Flags: map[string]complete.Predictor{"f": files}},
			"show":      {Flags: map[string]complete.Predictor{"a": predict.Nothing, "s": predict.Nothing}},
			"gains": {Flags: map[string]complete.Predictor{
				"price":      predict.Nothing,
				"instrument": predict.Nothing,
				"c":          predict.Set{"USD", "EUR"},
				"intraday":   predict.Nothing,
			}},
			"assist": {},
		},
	}
}
