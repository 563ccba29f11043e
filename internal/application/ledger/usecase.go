package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/domain"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
	"github.com/warungpos/costing-api/pkg/logger"
)

// UseCase applies and rolls back stock movements transactionally, with row
// locking (SELECT FOR UPDATE) on the stock item for the read-modify-write.
type UseCase struct {
	tx        TxRunner
	movements repository.MovementRepository // pool-bound, read paths only
	expenses  ExpenseRecorder
	log       *logger.Logger
}

// NewUseCase builds the ledger usecase.
func NewUseCase(tx TxRunner, movements repository.MovementRepository, expenses ExpenseRecorder, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, movements: movements, expenses: expenses, log: log}
}

// MovementInput input to ApplyMovement. Quantity is a magnitude for IN/OUT and
// the new absolute balance for ADJUST. Nil UnitPrice defaults to zero.
type MovementInput struct {
	Target        entity.StockTarget
	Type          string
	Quantity      decimal.Decimal
	UnitPrice     *decimal.Decimal
	SupplierID    string
	Supplier      string
	InvoiceNumber string
	Notes         string
}

func (in MovementInput) validate() error {
	if in.Target.IsZero() || !entity.MovementTypeValid(in.Type) {
		return domain.ErrValidation
	}
	switch in.Type {
	case entity.MovementTypeADJUST:
		if in.Quantity.IsNegative() {
			return domain.ErrValidation
		}
	default:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrValidation
		}
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return domain.ErrValidation
	}
	return nil
}

// ApplyMovement records one stock change and mutates the stock item in the
// same transaction. The balance snapshots are frozen on the movement row at
// creation. On an IN with positive total cost the purchase expense hook fires
// after commit; its failure is logged and never surfaced.
func (uc *UseCase) ApplyMovement(ctx context.Context, scope entity.Scope, in MovementInput) (*entity.Movement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	unitPrice := decimal.Zero
	if in.UnitPrice != nil {
		unitPrice = *in.UnitPrice
	}

	var (
		created  *entity.Movement
		itemName string
		itemUnit string
	)
	err := uc.tx.Run(ctx, func(movements repository.MovementRepository, stock repository.StockItemRepository) error {
		item, err := stock.GetForUpdate(ctx, in.Target)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		before := item.Quantity
		var after decimal.Decimal
		switch in.Type {
		case entity.MovementTypeIN:
			after = before.Add(in.Quantity)
		case entity.MovementTypeOUT:
			after = before.Sub(in.Quantity)
		case entity.MovementTypeADJUST:
			after = in.Quantity // absolute set, ignores the current balance
		}
		if after.IsNegative() {
			return domain.ErrInvalidStock
		}

		totalCost := decimal.Zero
		if in.Type != entity.MovementTypeADJUST {
			totalCost = in.Quantity.Mul(unitPrice)
		}

		m := &entity.Movement{
			ID:            uuid.New().String(),
			OutletID:      scope.OutletID,
			Target:        in.Target,
			Type:          in.Type,
			Quantity:      in.Quantity,
			UnitPrice:     unitPrice,
			TotalCost:     totalCost,
			StockBefore:   before,
			StockAfter:    after,
			SupplierID:    in.SupplierID,
			Supplier:      in.Supplier,
			InvoiceNumber: in.InvoiceNumber,
			Notes:         in.Notes,
			CreatedBy:     scope.UserID,
			CreatedAt:     time.Now(),
		}
		if err := movements.Create(ctx, m); err != nil {
			return err
		}

		// Last-purchase-cost convention: an IN with a positive price also
		// overwrites the stored unit cost (no weighted average).
		var newCost *decimal.Decimal
		if in.Type == entity.MovementTypeIN && unitPrice.GreaterThan(decimal.Zero) {
			newCost = &unitPrice
		}
		if err := stock.SetQuantity(ctx, in.Target, after, newCost); err != nil {
			return err
		}

		created = m
		itemName = item.Name
		itemUnit = item.Unit
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created.Type == entity.MovementTypeIN && created.TotalCost.GreaterThan(decimal.Zero) {
		if err := uc.expenses.RecordPurchase(ctx, scope, created, itemName, itemUnit); err != nil {
			// Best effort: a ledger entry may exist with no matching expense.
			uc.log.Error().Err(err).
				Str("movement_id", created.ID).
				Msg("record purchase expense")
		}
	}
	return created, nil
}

// DeleteMovement rolls a movement back: the stock item is restored to the
// movement's frozen stockBefore and the row is removed. Only the most recent
// movement for a target may be deleted; the snapshot restore is not sound for
// older entries because the remaining history is never recomputed.
func (uc *UseCase) DeleteMovement(ctx context.Context, scope entity.Scope, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return domain.ErrValidation
	}
	err := uc.tx.Run(ctx, func(movements repository.MovementRepository, stock repository.StockItemRepository) error {
		m, err := movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		// Lock the stock row before checking recency. A concurrent apply on
		// the same target commits a newer movement while we wait for the
		// lock, so the latest check is only valid once the lock is held.
		item, err := stock.GetForUpdate(ctx, m.Target)
		if err != nil {
			return err
		}
		latest, err := movements.LatestIDForTarget(ctx, m.Target)
		if err != nil {
			return err
		}
		if latest != m.ID {
			return domain.ErrNotLatestMovement
		}

		if item != nil {
			if err := stock.SetQuantity(ctx, m.Target, m.StockBefore, nil); err != nil {
				return err
			}
		}
		return movements.Delete(ctx, m.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("movement_id", id).
		Str("deleted_by", scope.UserID).
		Str("reason", reason).
		Msg("stock movement deleted and balance rolled back")
	return nil
}

// GetMovement fetches one ledger entry.
func (uc *UseCase) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// ListMovements lists ledger entries, newest first.
func (uc *UseCase) ListMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 100
	}
	return uc.movements.List(ctx, f)
}

// Summary aggregates counts and totals by type over a period.
func (uc *UseCase) Summary(ctx context.Context, outletID string, from, to *time.Time) (*repository.MovementSummary, error) {
	return uc.movements.Summary(ctx, outletID, from, to)
}
