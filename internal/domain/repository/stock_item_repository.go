package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/domain/entity"
)

// StockItemRepository is the persistence port for trackable stock items
// (ingredients and inventory items, dispatched on the target kind).
// Get/GetForUpdate return (nil, nil) when the item does not exist.
type StockItemRepository interface {
	Get(ctx context.Context, target entity.StockTarget) (*entity.StockItem, error)

	// GetForUpdate locks the row (SELECT ... FOR UPDATE) for the duration of
	// the enclosing transaction. Only meaningful on a tx-bound repository.
	GetForUpdate(ctx context.Context, target entity.StockTarget) (*entity.StockItem, error)

	// SetQuantity writes the new balance; when unitCost is non-nil the stored
	// unit cost is overwritten as well (last-purchase-cost convention).
	SetQuantity(ctx context.Context, target entity.StockTarget, quantity decimal.Decimal, unitCost *decimal.Decimal) error
}
