package recipe

import (
	"context"

	"github.com/warungpos/costing-api/internal/application/dto"
	"github.com/warungpos/costing-api/internal/domain"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

// TxRunner runs a callback with a recipe repository bound to one storage
// transaction, for the atomic delete-all-then-insert replace.
type TxRunner interface {
	RunRecipes(ctx context.Context, fn func(recipes repository.RecipeRepository) error) error
}

// UseCase maintains menu item recipes (bill of materials).
type UseCase struct {
	tx        TxRunner
	recipes   repository.RecipeRepository // pool-bound, read and single-line paths
	menuItems repository.MenuItemRepository
}

// NewUseCase builds the recipe usecase.
func NewUseCase(tx TxRunner, recipes repository.RecipeRepository, menuItems repository.MenuItemRepository) *UseCase {
	return &UseCase{tx: tx, recipes: recipes, menuItems: menuItems}
}

// Replace swaps the full recipe of a menu item in one transaction and returns
// the new line set. An empty ingredient list clears the recipe.
func (uc *UseCase) Replace(ctx context.Context, menuItemID string, in []dto.RecipeLineInput) ([]*entity.RecipeLine, error) {
	if menuItemID == "" {
		return nil, domain.ErrValidation
	}
	item, err := uc.menuItems.GetByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	lines := make([]*entity.RecipeLine, 0, len(in))
	for _, l := range in {
		if l.IngredientID == "" || l.Quantity.IsNegative() {
			return nil, domain.ErrValidation
		}
		lines = append(lines, &entity.RecipeLine{
			MenuItemID:   menuItemID,
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			Unit:         l.Unit,
		})
	}

	err = uc.tx.RunRecipes(ctx, func(recipes repository.RecipeRepository) error {
		return recipes.ReplaceForMenuItem(ctx, menuItemID, lines)
	})
	if err != nil {
		return nil, err
	}
	return uc.recipes.ListByMenuItem(ctx, menuItemID)
}

// ListForMenuItem returns the recipe of one menu item.
func (uc *UseCase) ListForMenuItem(ctx context.Context, menuItemID string) ([]*entity.RecipeLine, error) {
	item, err := uc.menuItems.GetByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.recipes.ListByMenuItem(ctx, menuItemID)
}

// AddLine appends a single ingredient requirement to a recipe.
func (uc *UseCase) AddLine(ctx context.Context, in dto.AddRecipeLineRequest) (*entity.RecipeLine, error) {
	if in.MenuItemID == "" || in.IngredientID == "" || in.Quantity.IsNegative() {
		return nil, domain.ErrValidation
	}
	item, err := uc.menuItems.GetByID(ctx, in.MenuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	line := &entity.RecipeLine{
		MenuItemID:   in.MenuItemID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
	}
	if err := uc.recipes.Add(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// RemoveLine deletes a single recipe line by id.
func (uc *UseCase) RemoveLine(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation
	}
	return uc.recipes.Remove(ctx, id)
}
