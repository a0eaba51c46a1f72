package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/taxlot"
)

// AllocationMarkdown renders the outcome of one sale allocation: the lots it
// consumed, the realized figures, and the oversell warning when the sale
// could not be fully filled.
func AllocationMarkdown(result *taxlot.AllocationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Sale %s: %s x %s on %s\n\n",
		result.Sale.ID, result.Sale.Quantity, result.Sale.Symbol, result.Sale.Date)
	fmt.Fprintf(&b, "Method: %s\n\n", result.Method)

	fmt.Fprintln(&b, "| Lot | Quantity | Cost Basis | Proceeds | Gain/Loss | Days Held |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, rec := range result.Allocations {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %d |\n",
			rec.LotID,
			rec.QuantitySold,
			rec.CostBasis,
			rec.Proceeds,
			rec.GainLoss.SignedString(),
			rec.HoldingDays,
		)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | **%s** | **%s** | **%s** | |\n",
		result.TotalQuantitySold,
		result.TotalCostBasis,
		result.TotalProceeds,
		result.GainLoss.SignedString(),
	)

	if result.Warning != nil {
		fmt.Fprintf(&b, "\n> **Warning**: %s\n", result.Warning.Error())
	}

	return b.String()
}
