package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/domain/entity"
)

// CreateMovementRequest body for POST /api/inventory/movements.
// Exactly one of ingredient_id / inventory_id must be set.
type CreateMovementRequest struct {
	IngredientID  string           `json:"ingredient_id,omitempty"`
	InventoryID   string           `json:"inventory_id,omitempty"`
	Type          string           `json:"type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	SupplierID    string           `json:"supplier_id,omitempty"`
	Supplier      string           `json:"supplier,omitempty"`
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// DeleteMovementRequest body for DELETE /api/inventory/movements/:id.
// Reason is the mandatory audit justification.
type DeleteMovementRequest struct {
	Reason string `json:"reason"`
}

// MovementDTO response shape of one ledger entry.
type MovementDTO struct {
	ID            string          `json:"id"`
	OutletID      string          `json:"outlet_id"`
	IngredientID  string          `json:"ingredient_id,omitempty"`
	InventoryID   string          `json:"inventory_id,omitempty"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	StockBefore   decimal.Decimal `json:"stock_before"`
	StockAfter    decimal.Decimal `json:"stock_after"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	Supplier      string          `json:"supplier,omitempty"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FromMovement maps the entity to its response shape.
func FromMovement(m *entity.Movement) MovementDTO {
	out := MovementDTO{
		ID:            m.ID,
		OutletID:      m.OutletID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TotalCost:     m.TotalCost,
		StockBefore:   m.StockBefore,
		StockAfter:    m.StockAfter,
		SupplierID:    m.SupplierID,
		Supplier:      m.Supplier,
		InvoiceNumber: m.InvoiceNumber,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
	switch m.Target.Kind {
	case entity.KindIngredient:
		out.IngredientID = m.Target.ID
	case entity.KindInventoryItem:
		out.InventoryID = m.Target.ID
	}
	return out
}

// MovementTypeTotals count and cost aggregate for one movement type.
type MovementTypeTotals struct {
	Count     int64           `json:"count"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// MovementSummaryResponse body for GET /api/inventory/movements-summary.
type MovementSummaryResponse struct {
	StockIn      MovementTypeTotals `json:"stock_in"`
	StockOut     MovementTypeTotals `json:"stock_out"`
	StockAdjust  MovementTypeTotals `json:"stock_adjust"`
	TotalExpense decimal.Decimal    `json:"total_expense"`
}
