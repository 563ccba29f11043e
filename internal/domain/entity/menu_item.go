package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a sellable product. Cost is the stored ingredient cost, refreshed
// by the recipe-cost recalculation; Price is the selling price.
type MenuItem struct {
	ID        string
	OutletID  string
	Category  string
	Name      string
	Price     decimal.Decimal
	Cost      decimal.Decimal
	IsActive  bool
	UpdatedAt time.Time
}
