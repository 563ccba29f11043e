package entity

// StockKind discriminates the two trackable item tables.
type StockKind string

const (
	KindIngredient    StockKind = "ingredient"
	KindInventoryItem StockKind = "inventory_item"
)

// StockTarget is a tagged reference to exactly one stock item.
// Build it through IngredientTarget or InventoryItemTarget so that
// "both set" and "neither set" are unrepresentable; the zero value is invalid.
type StockTarget struct {
	Kind StockKind
	ID   string
}

// IngredientTarget references a recipe ingredient.
func IngredientTarget(id string) StockTarget {
	return StockTarget{Kind: KindIngredient, ID: id}
}

// InventoryItemTarget references a general stocked good.
func InventoryItemTarget(id string) StockTarget {
	return StockTarget{Kind: KindInventoryItem, ID: id}
}

// IsZero reports whether the target was never set.
func (t StockTarget) IsZero() bool {
	return t.Kind == "" || t.ID == ""
}
