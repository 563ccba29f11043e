package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/warungpos/costing-api/internal/application/dto"
	"github.com/warungpos/costing-api/internal/application/ledger"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

// MovementHandler serves the stock ledger endpoints.
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler builds the handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create handles POST /api/inventory/movements.
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	scope := scopeFrom(c)
	if scope.OutletID == "" || scope.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "invalid body"})
	}
	input, err := ledger.InputFromRequest(in)
	if err != nil {
		return respondError(c, err)
	}
	m, err := h.uc.ApplyMovement(c.Context(), scope, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(m))
}

// List handles GET /api/inventory/movements.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	outletID := c.Query("outlet_id")
	if outletID == "" {
		outletID = GetOutletID(c)
	}
	f := repository.MovementFilter{
		OutletID:   outletID,
		Type:       c.Query("type"),
		SupplierID: c.Query("supplier_id"),
		Limit:      c.QueryInt("limit"),
	}
	if id := c.Query("ingredient_id"); id != "" {
		t := entity.IngredientTarget(id)
		f.Target = &t
	} else if id := c.Query("inventory_id"); id != "" {
		t := entity.InventoryItemTarget(id)
		f.Target = &t
	}
	from, to, err := optionalPeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "dates must be YYYY-MM-DD"})
	}
	f.From, f.To = from, to

	movements, err := h.uc.ListMovements(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// GetByID handles GET /api/inventory/movements/:id.
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.uc.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovement(m))
}

// Delete handles DELETE /api/inventory/movements/:id. The body must carry the
// audit reason; the stock balance is rolled back to the movement's snapshot.
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	scope := scopeFrom(c)
	if scope.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.DeleteMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "invalid body"})
	}
	if err := h.uc.DeleteMovement(c.Context(), scope, c.Params("id"), in.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movement deleted and stock restored"})
}

// Summary handles GET /api/inventory/movements-summary.
func (h *MovementHandler) Summary(c *fiber.Ctx) error {
	outletID := c.Query("outlet_id")
	if outletID == "" {
		outletID = GetOutletID(c)
	}
	from, to, err := optionalPeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "dates must be YYYY-MM-DD"})
	}

	s, err := h.uc.Summary(c.Context(), outletID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementSummaryResponse{
		StockIn:      dto.MovementTypeTotals{Count: s.InCount, TotalCost: s.InTotalCost},
		StockOut:     dto.MovementTypeTotals{Count: s.OutCount, TotalCost: s.OutTotalCost},
		StockAdjust:  dto.MovementTypeTotals{Count: s.AdjustCount},
		TotalExpense: s.InTotalCost,
	})
}

// optionalPeriod parses start_date / end_date query params (YYYY-MM-DD).
// Missing params stay nil. The end date is widened to the end of its day.
func optionalPeriod(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		t = t.AddDate(0, 0, 1).Add(-time.Second)
		to = &t
	}
	return from, to, nil
}
