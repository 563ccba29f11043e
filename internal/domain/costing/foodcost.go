package costing

import "github.com/shopspring/decimal"

// Health bands. Thresholds are fixed business constants, not configuration.
const (
	HealthExcellent = "excellent"
	HealthGood      = "good"
	HealthWarning   = "warning"
	HealthCritical  = "critical"
)

var (
	hundred = decimal.NewFromInt(100)

	foodCostGoodMax    = decimal.NewFromInt(35)
	foodCostWarningMax = decimal.NewFromInt(40)

	varianceWarningPct  = decimal.NewFromInt(5)
	varianceCriticalPct = decimal.NewFromInt(10)

	cogsExcellentMax = decimal.NewFromInt(30)
)

// LineCost is the cost contribution of one recipe line: quantity × ingredient unit cost.
func LineCost(quantity, costPerUnit decimal.Decimal) decimal.Decimal {
	return quantity.Mul(costPerUnit)
}

// FoodCostPercent is ingredient cost as a percentage of selling price.
// Returns zero when the selling price is not positive.
func FoodCostPercent(ingredientCost, sellingPrice decimal.Decimal) decimal.Decimal {
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return ingredientCost.Div(sellingPrice).Mul(hundred)
}

// GrossMarginPercent is gross profit as a percentage of selling price.
// Returns zero when the selling price is not positive.
func GrossMarginPercent(ingredientCost, sellingPrice decimal.Decimal) decimal.Decimal {
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return sellingPrice.Sub(ingredientCost).Div(sellingPrice).Mul(hundred)
}

// FoodCostHealth bands a food-cost percentage: good ≤35, warning ≤40, critical above.
func FoodCostHealth(foodCostPercent decimal.Decimal) string {
	switch {
	case foodCostPercent.GreaterThan(foodCostWarningMax):
		return HealthCritical
	case foodCostPercent.GreaterThan(foodCostGoodMax):
		return HealthWarning
	default:
		return HealthGood
	}
}

// VariancePercent is (actual − theoretical) / theoretical × 100.
// Returns zero when theoretical usage is zero.
func VariancePercent(variance, theoretical decimal.Decimal) decimal.Decimal {
	if theoretical.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return variance.Div(theoretical).Mul(hundred)
}

// VarianceHealth bands an absolute variance percentage: >10 critical, >5 warning.
func VarianceHealth(variancePercent decimal.Decimal) string {
	abs := variancePercent.Abs()
	switch {
	case abs.GreaterThan(varianceCriticalPct):
		return HealthCritical
	case abs.GreaterThan(varianceWarningPct):
		return HealthWarning
	default:
		return HealthGood
	}
}

// VarianceCause annotates the direction of a usage variance.
func VarianceCause(variance decimal.Decimal) string {
	switch {
	case variance.GreaterThan(decimal.Zero):
		return "Waste/Theft/Over-portioning"
	case variance.LessThan(decimal.Zero):
		return "Under-recording"
	default:
		return "On target"
	}
}

// COGSHealth bands a period food-cost percentage: excellent ≤30, good ≤35, warning ≤40.
func COGSHealth(foodCostPercent decimal.Decimal) string {
	switch {
	case foodCostPercent.LessThanOrEqual(cogsExcellentMax):
		return HealthExcellent
	case foodCostPercent.LessThanOrEqual(foodCostGoodMax):
		return HealthGood
	case foodCostPercent.LessThanOrEqual(foodCostWarningMax):
		return HealthWarning
	default:
		return HealthCritical
	}
}

// Round2 rounds to two decimal places for report output.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
