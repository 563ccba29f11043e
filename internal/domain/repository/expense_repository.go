package repository

import (
	"context"

	"github.com/warungpos/costing-api/internal/domain/entity"
)

// ExpenseRepository is the persistence port for bookkeeping expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
}
