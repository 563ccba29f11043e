package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/domain/entity"
)

// MenuItemRepository is the persistence port for sellable menu items.
// GetByID returns (nil, nil) when the item does not exist.
type MenuItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.MenuItem, error)

	// ListActive lists active items, optionally scoped to one outlet ("" = all).
	ListActive(ctx context.Context, outletID string) ([]*entity.MenuItem, error)

	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
}
