package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/taxlot"
)

// GainsMarkdown renders realized and unrealized gains per (account, symbol)
// over the whole book. Unrealized figures need a current price; when the
// provider has none for a symbol the cell shows "n/a" instead of failing the
// whole report.
func GainsMarkdown(book *taxlot.LotBook, prices taxlot.PriceProvider) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Report\n\n")
	fmt.Fprintln(&b, "| Account | Symbol | Position | Avg Cost | Realized | Unrealized |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")

	var totalRealized, totalUnrealized taxlot.Money
	for account, symbol := range book.Keys() {
		lots := book.Lots(account, symbol)
		realized := taxlot.RealizedGainLoss(lots)
		totalRealized = totalRealized.Add(realized)

		unrealized := "n/a"
		if prices != nil {
			if price, err := prices.LatestPrice(symbol); err == nil {
				gain := taxlot.UnrealizedGainLoss(lots, price)
				totalUnrealized = totalUnrealized.Add(gain)
				unrealized = gain.SignedString()
			}
		}

		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			account,
			symbol,
			book.Position(account, symbol),
			taxlot.WeightedAverageCost(lots),
			realized.SignedString(),
			unrealized,
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** | **%s** |\n",
		totalRealized.SignedString(),
		totalUnrealized.SignedString(),
	)

	return b.String()
}
