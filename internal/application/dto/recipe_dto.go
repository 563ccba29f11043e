package dto

import (
	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/domain/entity"
)

// RecipeLineInput one ingredient requirement in a recipe replace request.
type RecipeLineInput struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// ReplaceRecipeRequest body for POST /api/recipes/items/:itemId.
// The full recipe is replaced atomically (delete-all-then-insert).
type ReplaceRecipeRequest struct {
	Ingredients []RecipeLineInput `json:"ingredients"`
}

// AddRecipeLineRequest body for POST /api/recipes (single-line add).
type AddRecipeLineRequest struct {
	MenuItemID   string          `json:"item_id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// RecipeLineDTO response shape of one recipe line.
type RecipeLineDTO struct {
	ID             string          `json:"id"`
	MenuItemID     string          `json:"item_id"`
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
}

// FromRecipeLine maps the entity to its response shape.
func FromRecipeLine(l *entity.RecipeLine) RecipeLineDTO {
	return RecipeLineDTO{
		ID:             l.ID,
		MenuItemID:     l.MenuItemID,
		IngredientID:   l.IngredientID,
		IngredientName: l.IngredientName,
		Quantity:       l.Quantity,
		Unit:           l.Unit,
		CostPerUnit:    l.CostPerUnit,
	}
}
