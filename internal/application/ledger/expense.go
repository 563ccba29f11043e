package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

// PurchaseExpenseRecorder writes a STOCK_PURCHASE expense for an IN movement,
// linked back to the originating ledger entry.
type PurchaseExpenseRecorder struct {
	expenses repository.ExpenseRepository
}

// NewPurchaseExpenseRecorder builds the recorder.
func NewPurchaseExpenseRecorder(expenses repository.ExpenseRepository) *PurchaseExpenseRecorder {
	return &PurchaseExpenseRecorder{expenses: expenses}
}

var _ ExpenseRecorder = (*PurchaseExpenseRecorder)(nil)

// RecordPurchase creates the derived expense. Amount is the movement's total
// cost and the reference points at the movement id.
func (r *PurchaseExpenseRecorder) RecordPurchase(ctx context.Context, scope entity.Scope, m *entity.Movement, itemName, itemUnit string) error {
	e := &entity.Expense{
		OutletID:      m.OutletID,
		Type:          entity.ExpenseTypeStockPurchase,
		Category:      "Raw material purchase",
		Amount:        m.TotalCost,
		Description:   fmt.Sprintf("Purchase %s %s %s", itemName, m.Quantity.String(), itemUnit),
		ReferenceID:   m.ID,
		SupplierID:    m.SupplierID,
		InvoiceNumber: m.InvoiceNumber,
		PaidAt:        time.Now(),
		CreatedBy:     scope.UserID,
		CreatedAt:     time.Now(),
	}
	return r.expenses.Create(ctx, e)
}
