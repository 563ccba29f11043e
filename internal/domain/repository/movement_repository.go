package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/domain/entity"
)

// MovementFilter narrows movement listings. Zero values mean "no filter".
type MovementFilter struct {
	OutletID   string
	Type       string
	Target     *entity.StockTarget
	SupplierID string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// MovementSummary aggregates counts and totals by movement type over a period.
type MovementSummary struct {
	InCount      int64
	InTotalCost  decimal.Decimal
	OutCount     int64
	OutTotalCost decimal.Decimal
	AdjustCount  int64
}

// MovementRepository is the persistence port for the stock ledger.
// GetByID returns (nil, nil) when the movement does not exist.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	Delete(ctx context.Context, id string) error

	// LatestIDForTarget returns the id of the most recent movement affecting
	// the target, or "" when the target has no movements.
	LatestIDForTarget(ctx context.Context, target entity.StockTarget) (string, error)

	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, error)
	Summary(ctx context.Context, outletID string, from, to *time.Time) (*MovementSummary, error)
}
