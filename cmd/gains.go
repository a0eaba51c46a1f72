package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/taxlot"
	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
)

// pairsFlag collects repeatable KEY=VALUE flags.
type pairsFlag map[string]string

func (p pairsFlag) String() string {
	var parts []string
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p pairsFlag) Set(s string) error {
	key, value, found := strings.Cut(s, "=")
	if !found || key == "" {
		return fmt.Errorf("expected KEY=VALUE, got %q", s)
	}
	p[key] = value
	return nil
}

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	prices      pairsFlag
	instruments pairsFlag
	currency    string
	intraday    bool
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized and unrealized gain analysis" }
func (*gainsCmd) Usage() string {
	return `lots gains [-price SYMBOL=VALUE]... [-c <currency>] [-intraday -instrument SYMBOL=ID...]

  Calculates and displays realized and unrealized gains for each holding.
  Unrealized figures need a current price: pass them with -price, or let
  -intraday fetch the latest exchanged price for the mapped instruments.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	c.prices = pairsFlag{}
	c.instruments = pairsFlag{}
	f.Var(c.prices, "price", "Current price for a symbol, as SYMBOL=VALUE. Repeatable.")
	f.Var(c.instruments, "instrument", "Intraday instrument id for a symbol, as SYMBOL=ID. Repeatable.")
	f.StringVar(&c.currency, "c", "USD", "Currency of the -price values.")
	f.BoolVar(&c.intraday, "intraday", false, "Fetch current prices from the intraday feed.")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	var provider taxlot.PriceProvider
	if c.intraday {
		provider = &taxlot.IntradayFeed{Instruments: c.instruments}
	} else if len(c.prices) > 0 {
		static := taxlot.StaticPrices{}
		for symbol, value := range c.prices {
			price, err := strconv.ParseFloat(value, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing price for %s: %v\n", symbol, err)
				return subcommands.ExitUsageError
			}
			static[symbol] = taxlot.M(price, c.currency)
		}
		provider = static
	}

	printMarkdown(renderer.GainsMarkdown(book, provider))
	return subcommands.ExitSuccess
}
