package ledger

import (
	"context"

	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

// TxRunner runs a callback with movement and stock repositories bound to one
// storage transaction; Commit on nil, Rollback otherwise.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movements repository.MovementRepository,
		stock repository.StockItemRepository,
	) error) error
}

// ExpenseRecorder is the post-commit hook for purchase bookkeeping. Implementations
// must be safe to call outside the ledger transaction; the ledger treats failures
// as best-effort and never rolls back the movement.
type ExpenseRecorder interface {
	RecordPurchase(ctx context.Context, scope entity.Scope, m *entity.Movement, itemName, itemUnit string) error
}
