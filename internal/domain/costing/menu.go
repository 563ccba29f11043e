package costing

import "github.com/shopspring/decimal"

// Menu engineering matrix buckets.
const (
	ClassStar      = "star"      // high margin, high popularity
	ClassPlowhorse = "plowhorse" // low margin, high popularity
	ClassPuzzle    = "puzzle"    // high margin, low popularity
	ClassDog       = "dog"       // low margin, low popularity
	ClassNew       = "new"       // no sales in the period
)

// DefaultAverageMargin is assumed when no item sold in the period, so the
// classification does not degenerate on an empty denominator.
var DefaultAverageMargin = decimal.NewFromInt(30)

// ClassifyMenuItem buckets an item against the population averages.
// An item with zero sales is always "new", regardless of margin.
func ClassifyMenuItem(margin, quantitySold, avgMargin, avgQuantity decimal.Decimal) string {
	if quantitySold.IsZero() {
		return ClassNew
	}
	highMargin := margin.GreaterThanOrEqual(avgMargin)
	highPopularity := quantitySold.GreaterThanOrEqual(avgQuantity)
	switch {
	case highMargin && highPopularity:
		return ClassStar
	case !highMargin && highPopularity:
		return ClassPlowhorse
	case highMargin && !highPopularity:
		return ClassPuzzle
	default:
		return ClassDog
	}
}

// Recommendation returns the fixed advisory text for a bucket.
func Recommendation(class string) string {
	switch class {
	case ClassStar:
		return "Keep it up! This is a signature item"
	case ClassPlowhorse:
		return "Raise the price or reduce portion size to improve margin"
	case ClassPuzzle:
		return "Promote harder and place it prominently on the menu"
	case ClassDog:
		return "Consider removing it or reformulating the recipe"
	case ClassNew:
		return "Needs promotion, or evaluate whether it is still relevant"
	default:
		return ""
	}
}
