package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/warungpos/costing-api/internal/application/costing"
	"github.com/warungpos/costing-api/internal/application/dto"
)

// CostingHandler serves the costing and analytics endpoints.
type CostingHandler struct {
	recipeCost *costing.RecipeCostUseCase
	variance   *costing.VarianceUseCase
	menu       *costing.MenuEngineeringUseCase
	cogs       *costing.COGSUseCase
}

// NewCostingHandler builds the handler.
func NewCostingHandler(
	recipeCost *costing.RecipeCostUseCase,
	variance *costing.VarianceUseCase,
	menu *costing.MenuEngineeringUseCase,
	cogs *costing.COGSUseCase,
) *CostingHandler {
	return &CostingHandler{recipeCost: recipeCost, variance: variance, menu: menu, cogs: cogs}
}

// RecipeCosts handles GET /api/costing/recipes.
func (h *CostingHandler) RecipeCosts(c *fiber.Ctx) error {
	report, err := h.recipeCost.List(c.Context(), resolveOutlet(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Recalculate handles POST /api/costing/recipes/:itemId/recalculate.
func (h *CostingHandler) Recalculate(c *fiber.Ctx) error {
	result, err := h.recipeCost.Recalculate(c.Context(), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// RecalculateAll handles POST /api/costing/recipes/recalculate-all.
func (h *CostingHandler) RecalculateAll(c *fiber.Ctx) error {
	result, err := h.recipeCost.RecalculateAll(c.Context(), resolveOutlet(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Variance handles GET /api/costing/variance.
// Defaults to the current month to date.
func (h *CostingHandler) Variance(c *fiber.Ctx) error {
	from, to, err := periodFromQuery(c, monthToDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "dates must be YYYY-MM-DD"})
	}
	report, err := h.variance.Report(c.Context(), resolveOutlet(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// MenuEngineering handles GET /api/costing/menu-engineering.
// Defaults to the last 30 days.
func (h *CostingHandler) MenuEngineering(c *fiber.Ctx) error {
	from, to, err := periodFromQuery(c, last30Days)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "dates must be YYYY-MM-DD"})
	}
	report, err := h.menu.Report(c.Context(), resolveOutlet(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// COGSSummary handles GET /api/costing/cogs-summary.
// Defaults to the current month to date.
func (h *CostingHandler) COGSSummary(c *fiber.Ctx) error {
	from, to, err := periodFromQuery(c, monthToDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "dates must be YYYY-MM-DD"})
	}
	summary, err := h.cogs.Summary(c.Context(), resolveOutlet(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// resolveOutlet prefers an explicit outlet_id query param over the token outlet.
func resolveOutlet(c *fiber.Ctx) string {
	if id := c.Query("outlet_id"); id != "" {
		return id
	}
	return GetOutletID(c)
}

// periodFromQuery parses start_date / end_date (YYYY-MM-DD), falling back to
// the given default window. The end date is widened to the end of its day.
func periodFromQuery(c *fiber.Ctx, def func(now time.Time) (time.Time, time.Time)) (time.Time, time.Time, error) {
	from, to := def(time.Now())
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return from, to, nil
}

func monthToDate(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, now
}

func last30Days(now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, 0, -30), now
}
