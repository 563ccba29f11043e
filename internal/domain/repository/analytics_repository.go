package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// IngredientUsage is a per-ingredient consumption total over a period.
type IngredientUsage struct {
	IngredientID string
	Name         string
	Unit         string
	Quantity     decimal.Decimal
}

// MenuItemSales aggregates completed sale lines per menu item over a period.
type MenuItemSales struct {
	MenuItemID string
	Quantity   decimal.Decimal
	Revenue    decimal.Decimal
	OrderCount int64
}

// AnalyticsRepository serves the read-only aggregates consumed by the costing
// analytics. Sale lines of completed transactions are immutable facts here;
// this service never writes them. Empty outletID means all outlets.
type AnalyticsRepository interface {
	// TheoreticalUsage sums sold quantity × recipe quantity per ingredient
	// over completed transactions in the period.
	TheoreticalUsage(ctx context.Context, outletID string, from, to time.Time) ([]IngredientUsage, error)

	// ActualUsage sums OUT and adjustment_out ingredient movements in the period.
	ActualUsage(ctx context.Context, outletID string, from, to time.Time) ([]IngredientUsage, error)

	SalesByMenuItem(ctx context.Context, outletID string, from, to time.Time) ([]MenuItemSales, error)

	// RevenueTotal sums completed transaction totals in the period.
	RevenueTotal(ctx context.Context, outletID string, from, to time.Time) (decimal.Decimal, error)

	// PurchaseTotal sums IN-movement total costs in the period (COGS proxy).
	PurchaseTotal(ctx context.Context, outletID string, from, to time.Time) (decimal.Decimal, error)
}
