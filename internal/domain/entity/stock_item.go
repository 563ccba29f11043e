package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is a trackable quantity-bearing record: a recipe ingredient or a
// general inventory item, depending on Target.Kind. Quantity and UnitCost are
// written exclusively by the movement ledger.
type StockItem struct {
	Target       StockTarget
	OutletID     string
	Name         string
	Unit         string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	MinThreshold decimal.Decimal
	IsActive     bool
	UpdatedAt    time.Time
}
