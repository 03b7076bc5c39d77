package booking

import (
	"math"

	"vibezone/models"
)

// FilterKnownAddOns drops add-on names that are not in the catalog. Unknown
// names are not an error; they simply contribute nothing to the total.
func FilterKnownAddOns(selected []string) []string {
	known := make([]string, 0, len(selected))
	for _, name := range selected {
		if _, ok := models.AddOnPrices[name]; ok {
			known = append(known, name)
		}
	}
	return known
}

// ComputeTotal returns base_price(package) plus the sum of known add-on
// prices, in whole dollars.
func ComputeTotal(pkg models.Package, addOns []string) int {
	total := pkg.BasePrice
	for _, name := range addOns {
		total += models.AddOnPrices[name]
	}
	return total
}

// DepositFromTotal is the 50%-of-total deposit policy used by the intake
// path, rounded to the nearest dollar. The create-at-checkout path uses the
// catalog's flat per-package deposit instead.
func DepositFromTotal(total int) int {
	return int(math.Round(float64(total) * 0.5))
}
