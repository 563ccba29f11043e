package ledger

import (
	"github.com/warungpos/costing-api/internal/application/dto"
	"github.com/warungpos/costing-api/internal/domain"
	"github.com/warungpos/costing-api/internal/domain/entity"
)

// InputFromRequest adapts the HTTP body to a MovementInput. Exactly one of
// ingredient_id / inventory_id must be set; both or neither is a validation
// error here, so the tagged target stays unambiguous below this point.
func InputFromRequest(in dto.CreateMovementRequest) (MovementInput, error) {
	var target entity.StockTarget
	switch {
	case in.IngredientID != "" && in.InventoryID != "":
		return MovementInput{}, domain.ErrValidation
	case in.IngredientID != "":
		target = entity.IngredientTarget(in.IngredientID)
	case in.InventoryID != "":
		target = entity.InventoryItemTarget(in.InventoryID)
	default:
		return MovementInput{}, domain.ErrValidation
	}
	return MovementInput{
		Target:        target,
		Type:          in.Type,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		SupplierID:    in.SupplierID,
		Supplier:      in.Supplier,
		InvoiceNumber: in.InvoiceNumber,
		Notes:         in.Notes,
	}, nil
}
