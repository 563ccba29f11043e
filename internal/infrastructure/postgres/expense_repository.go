package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepository)(nil)

// ExpenseRepository persists bookkeeping expenses.
type ExpenseRepository struct {
	db Querier
}

// NewExpenseRepository creates the repository on db (pool or transaction).
func NewExpenseRepository(db Querier) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const insertExpenseQuery = `
	INSERT INTO expenses (
		id, outlet_id, type, category, amount, description,
		reference_id, supplier_id, invoice_number, paid_at, created_by, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12
	)`

// Create inserts the expense. Assigns an id when the caller left it empty.
func (r *ExpenseRepository) Create(ctx context.Context, e *entity.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, insertExpenseQuery,
		e.ID, e.OutletID, e.Type, e.Category, e.Amount, e.Description,
		e.ReferenceID, e.SupplierID, e.InvoiceNumber, e.PaidAt, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}
