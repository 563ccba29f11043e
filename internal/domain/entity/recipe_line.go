package entity

import "github.com/shopspring/decimal"

// RecipeLine is one ingredient requirement inside a menu item's bill of materials.
type RecipeLine struct {
	ID           string
	MenuItemID   string
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string

	// Denormalized ingredient fields filled by list queries.
	IngredientName string
	IngredientUnit string
	CostPerUnit    decimal.Decimal
}
