package repository

import (
	"context"

	"github.com/warungpos/costing-api/internal/domain/entity"
)

// RecipeRepository is the persistence port for recipe lines (bill of materials).
// List methods return lines enriched with ingredient name/unit/cost.
type RecipeRepository interface {
	ListByMenuItem(ctx context.Context, menuItemID string) ([]*entity.RecipeLine, error)

	// ListByOutlet returns the recipe lines of every active menu item in the
	// outlet, keyed by menu item id. Empty outletID means all outlets.
	ListByOutlet(ctx context.Context, outletID string) (map[string][]*entity.RecipeLine, error)

	// ReplaceForMenuItem deletes the item's existing lines and inserts the new
	// set. Callers must run it inside a transaction for atomicity.
	ReplaceForMenuItem(ctx context.Context, menuItemID string, lines []*entity.RecipeLine) error

	Add(ctx context.Context, line *entity.RecipeLine) error
	Remove(ctx context.Context, id string) error
}
