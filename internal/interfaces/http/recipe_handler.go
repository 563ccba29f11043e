package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/warungpos/costing-api/internal/application/dto"
	"github.com/warungpos/costing-api/internal/application/recipe"
	"github.com/warungpos/costing-api/internal/domain/entity"
)

// RecipeHandler serves the recipe (bill of materials) endpoints.
type RecipeHandler struct {
	uc *recipe.UseCase
}

// NewRecipeHandler builds the handler.
func NewRecipeHandler(uc *recipe.UseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// ListForItem handles GET /api/recipes/items/:itemId.
func (h *RecipeHandler) ListForItem(c *fiber.Ctx) error {
	lines, err := h.uc.ListForMenuItem(c.Context(), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item_id": c.Params("itemId"), "ingredients": toRecipeDTOs(lines)})
}

// Replace handles POST /api/recipes/items/:itemId. The full recipe is swapped
// atomically; an empty ingredient list clears it.
func (h *RecipeHandler) Replace(c *fiber.Ctx) error {
	var in dto.ReplaceRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "invalid body"})
	}
	lines, err := h.uc.Replace(c.Context(), c.Params("itemId"), in.Ingredients)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item_id": c.Params("itemId"), "ingredients": toRecipeDTOs(lines)})
}

// AddLine handles POST /api/recipes.
func (h *RecipeHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddRecipeLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "invalid body"})
	}
	line, err := h.uc.AddLine(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRecipeLine(line))
}

// RemoveLine handles DELETE /api/recipes/:id.
func (h *RecipeHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recipe line removed"})
}

func toRecipeDTOs(lines []*entity.RecipeLine) []dto.RecipeLineDTO {
	out := make([]dto.RecipeLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.FromRecipeLine(l))
	}
	return out
}
