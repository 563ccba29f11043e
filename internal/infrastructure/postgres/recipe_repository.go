package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warungpos/costing-api/internal/domain"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepository)(nil)

// RecipeRepository persists recipe lines and joins them to ingredient data.
type RecipeRepository struct {
	db Querier
}

// NewRecipeRepository creates the repository on db (pool or transaction).
func NewRecipeRepository(db Querier) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeLineColumns = `
	r.id, r.item_id, r.ingredient_id, r.quantity, r.unit,
	i.name, i.unit, i.cost_per_unit`

// ListByMenuItem returns the item's recipe lines with ingredient data attached.
func (r *RecipeRepository) ListByMenuItem(ctx context.Context, menuItemID string) ([]*entity.RecipeLine, error) {
	query := `SELECT` + recipeLineColumns + `
		FROM recipes r
		JOIN ingredients i ON i.id = r.ingredient_id
		WHERE r.item_id = $1
		ORDER BY i.name`

	rows, err := r.db.Query(ctx, query, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.RecipeLine
	for rows.Next() {
		var line entity.RecipeLine
		err := rows.Scan(
			&line.ID, &line.MenuItemID, &line.IngredientID, &line.Quantity, &line.Unit,
			&line.IngredientName, &line.IngredientUnit, &line.CostPerUnit,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		lines = append(lines, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	return lines, nil
}

// ListByOutlet returns the recipe lines of every active menu item, keyed by
// menu item id. Empty outletID means all outlets.
func (r *RecipeRepository) ListByOutlet(ctx context.Context, outletID string) (map[string][]*entity.RecipeLine, error) {
	query := `SELECT` + recipeLineColumns + `
		FROM recipes r
		JOIN ingredients i ON i.id = r.ingredient_id
		JOIN menu_items m ON m.id = r.item_id
		WHERE m.is_active = TRUE AND ($1 = '' OR m.outlet_id = $1)
		ORDER BY r.item_id, i.name`

	rows, err := r.db.Query(ctx, query, outletID)
	if err != nil {
		return nil, fmt.Errorf("list outlet recipes: %w", err)
	}
	defer rows.Close()

	byItem := make(map[string][]*entity.RecipeLine)
	for rows.Next() {
		var line entity.RecipeLine
		err := rows.Scan(
			&line.ID, &line.MenuItemID, &line.IngredientID, &line.Quantity, &line.Unit,
			&line.IngredientName, &line.IngredientUnit, &line.CostPerUnit,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		byItem[line.MenuItemID] = append(byItem[line.MenuItemID], &line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list outlet recipes: %w", err)
	}
	return byItem, nil
}

// ReplaceForMenuItem swaps the item's full line set. Run it inside a
// transaction; the delete and inserts are separate statements.
func (r *RecipeRepository) ReplaceForMenuItem(ctx context.Context, menuItemID string, lines []*entity.RecipeLine) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE item_id = $1`, menuItemID); err != nil {
		return fmt.Errorf("clear recipe: %w", err)
	}
	for _, line := range lines {
		line.MenuItemID = menuItemID
		if err := r.Add(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// Add inserts one recipe line. Assigns an id when the caller left it empty.
func (r *RecipeRepository) Add(ctx context.Context, line *entity.RecipeLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO recipes (id, item_id, ingredient_id, quantity, unit) VALUES ($1, $2, $3, $4, $5)`,
		line.ID, line.MenuItemID, line.IngredientID, line.Quantity, line.Unit,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: ingredient already in recipe", domain.ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("insert recipe line: %w", err)
	}
	return nil
}

// Remove deletes one recipe line.
func (r *RecipeRepository) Remove(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
