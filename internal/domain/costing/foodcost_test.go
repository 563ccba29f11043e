package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warungpos/costing-api/internal/domain/costing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Latte: 0.2 L milk at 15000/L plus 0.02 kg coffee at 200000/kg gives an
// ingredient cost of 7000, which is 28% of a 25000 selling price.
func TestLineCostAndFoodCostPercent(t *testing.T) {
	milk := costing.LineCost(dec("0.2"), dec("15000"))
	coffee := costing.LineCost(dec("0.02"), dec("200000"))
	total := milk.Add(coffee)

	assert.True(t, dec("7000").Equal(total), "expected 7000, got %s", total)

	pct := costing.FoodCostPercent(total, dec("25000"))
	assert.True(t, dec("28").Equal(pct), "expected 28, got %s", pct)
	assert.Equal(t, costing.HealthGood, costing.FoodCostHealth(pct))
}

func TestFoodCostPercent_ZeroPrice(t *testing.T) {
	assert.True(t, costing.FoodCostPercent(dec("7000"), decimal.Zero).IsZero())
	assert.True(t, costing.FoodCostPercent(dec("7000"), dec("-1")).IsZero())
}

func TestGrossMarginPercent(t *testing.T) {
	margin := costing.GrossMarginPercent(dec("7000"), dec("25000"))
	assert.True(t, dec("72").Equal(margin), "expected 72, got %s", margin)
	assert.True(t, costing.GrossMarginPercent(dec("7000"), decimal.Zero).IsZero())
}

func TestFoodCostHealth_Bands(t *testing.T) {
	cases := []struct {
		pct  string
		want string
	}{
		{"35", costing.HealthGood},
		{"35.01", costing.HealthWarning},
		{"40", costing.HealthWarning},
		{"40.01", costing.HealthCritical},
		{"0", costing.HealthGood},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, costing.FoodCostHealth(dec(tc.pct)), "pct %s", tc.pct)
	}
}

func TestVariancePercent(t *testing.T) {
	// actual 11, theoretical 10: variance 1 over 10 = 10%
	pct := costing.VariancePercent(dec("1"), dec("10"))
	assert.True(t, dec("10").Equal(pct), "expected 10, got %s", pct)

	assert.True(t, costing.VariancePercent(dec("5"), decimal.Zero).IsZero())
}

func TestVarianceHealth_Bands(t *testing.T) {
	cases := []struct {
		pct  string
		want string
	}{
		{"0", costing.HealthGood},
		{"5", costing.HealthGood},
		{"5.1", costing.HealthWarning},
		{"-7", costing.HealthWarning},
		{"10", costing.HealthWarning},
		{"10.5", costing.HealthCritical},
		{"-15", costing.HealthCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, costing.VarianceHealth(dec(tc.pct)), "pct %s", tc.pct)
	}
}

func TestVarianceCause(t *testing.T) {
	assert.Equal(t, "Waste/Theft/Over-portioning", costing.VarianceCause(dec("2")))
	assert.Equal(t, "Under-recording", costing.VarianceCause(dec("-2")))
	assert.Equal(t, "On target", costing.VarianceCause(decimal.Zero))
}

func TestCOGSHealth_Bands(t *testing.T) {
	cases := []struct {
		pct  string
		want string
	}{
		{"30", costing.HealthExcellent},
		{"30.01", costing.HealthGood},
		{"35", costing.HealthGood},
		{"38", costing.HealthWarning},
		{"40.01", costing.HealthCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, costing.COGSHealth(dec(tc.pct)), "pct %s", tc.pct)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "28.57", costing.Round2(dec("28.5714")).String())
	assert.Equal(t, "28.58", costing.Round2(dec("28.575")).String())
}
