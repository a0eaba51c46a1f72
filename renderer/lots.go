package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/taxlot"
)

// LotsMarkdown renders the open, partial, and closed lots of one
// (account, symbol) as a markdown report.
func LotsMarkdown(book *taxlot.LotBook, account, symbol string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Lots for %s in %s\n\n", symbol, account)

	lots := book.Lots(account, symbol)
	if len(lots) == 0 {
		fmt.Fprintln(&b, "No lots.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Lot | Acquired | Status | Remaining | Original | Cost Basis | Per Share |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
	var position taxlot.Quantity
	var cost taxlot.Money
	for _, lot := range lots {
		marker := ""
		if lot.LowConfidence() {
			// Snapshot lots without a cost basis are flagged for the reader.
			marker = " ⚠"
		}
		fmt.Fprintf(&b, "| %s%s | %s | %s | %s | %s | %s | %s |\n",
			lot.ID(), marker,
			lot.AcquisitionDate(),
			lot.Status(),
			lot.RemainingQuantity(),
			lot.OriginalQuantity(),
			lot.CostBasis(),
			lot.PricePerShare(),
		)
		position = position.Add(lot.RemainingQuantity())
		cost = cost.Add(lot.CostBasis())
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** | | **%s** | |\n", position, cost)

	ConditionalBlock(&b, func(w io.Writer) bool {
		printed := false
		for _, lot := range lots {
			for _, adj := range lot.Adjustments() {
				if !printed {
					fmt.Fprint(w, "\n## Corporate Actions\n\n")
					printed = true
				}
				fmt.Fprintf(w, "- %s: %s %s on lot %s\n", adj.Date, adj.Kind, adj.Ratio, lot.ID())
			}
		}
		return printed
	})

	return b.String()
}
