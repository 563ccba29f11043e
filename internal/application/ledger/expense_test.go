package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warungpos/costing-api/internal/application/ledger"
	"github.com/warungpos/costing-api/internal/domain/entity"
)

type capturingExpenseRepo struct {
	created []*entity.Expense
}

func (c *capturingExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	copied := *e
	c.created = append(c.created, &copied)
	return nil
}

func TestRecordPurchase_BuildsExpenseFromMovement(t *testing.T) {
	repo := &capturingExpenseRepo{}
	recorder := ledger.NewPurchaseExpenseRecorder(repo)

	m := &entity.Movement{
		ID:            "mov-1",
		OutletID:      testScope.OutletID,
		Target:        flour,
		Type:          entity.MovementTypeIN,
		Quantity:      dec("50"),
		UnitPrice:     dec("2000"),
		TotalCost:     dec("100000"),
		SupplierID:    "sup-1",
		InvoiceNumber: "INV-2026-001",
	}

	err := recorder.RecordPurchase(context.Background(), testScope, m, "Flour", "kg")
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	e := repo.created[0]
	assert.Equal(t, entity.ExpenseTypeStockPurchase, e.Type)
	assert.Equal(t, "Raw material purchase", e.Category)
	assert.True(t, dec("100000").Equal(e.Amount))
	assert.Equal(t, "Purchase Flour 50 kg", e.Description)
	assert.Equal(t, "mov-1", e.ReferenceID)
	assert.Equal(t, "sup-1", e.SupplierID)
	assert.Equal(t, "INV-2026-001", e.InvoiceNumber)
	assert.Equal(t, testScope.UserID, e.CreatedBy)
	assert.False(t, e.PaidAt.IsZero())
	assert.False(t, e.CreatedAt.IsZero(), "created_at stamped before insert")
	assert.WithinDuration(t, time.Now(), e.CreatedAt, time.Minute)
}
