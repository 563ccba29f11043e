package recipe_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warungpos/costing-api/internal/application/dto"
	"github.com/warungpos/costing-api/internal/application/recipe"
	"github.com/warungpos/costing-api/internal/domain"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeRecipeRepo struct {
	byItem map[string][]*entity.RecipeLine
	nextID int
}

func (f *fakeRecipeRepo) ListByMenuItem(_ context.Context, menuItemID string) ([]*entity.RecipeLine, error) {
	return f.byItem[menuItemID], nil
}

func (f *fakeRecipeRepo) ListByOutlet(context.Context, string) (map[string][]*entity.RecipeLine, error) {
	return f.byItem, nil
}

func (f *fakeRecipeRepo) ReplaceForMenuItem(_ context.Context, menuItemID string, lines []*entity.RecipeLine) error {
	delete(f.byItem, menuItemID)
	for _, line := range lines {
		line.MenuItemID = menuItemID
		if err := f.Add(context.Background(), line); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRecipeRepo) Add(_ context.Context, line *entity.RecipeLine) error {
	f.nextID++
	line.ID = "line-" + string(rune('a'+f.nextID))
	if f.byItem == nil {
		f.byItem = map[string][]*entity.RecipeLine{}
	}
	f.byItem[line.MenuItemID] = append(f.byItem[line.MenuItemID], line)
	return nil
}

func (f *fakeRecipeRepo) Remove(_ context.Context, id string) error {
	for itemID, lines := range f.byItem {
		for i, line := range lines {
			if line.ID == id {
				f.byItem[itemID] = append(lines[:i], lines[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

type fakeMenuItems struct {
	ids map[string]bool
}

func (f *fakeMenuItems) GetByID(_ context.Context, id string) (*entity.MenuItem, error) {
	if !f.ids[id] {
		return nil, nil
	}
	return &entity.MenuItem{ID: id, Name: "Item " + id, IsActive: true}, nil
}

func (f *fakeMenuItems) ListActive(context.Context, string) ([]*entity.MenuItem, error) {
	return nil, nil
}

func (f *fakeMenuItems) UpdateCost(context.Context, string, decimal.Decimal) error {
	return nil
}

type fakeTxRunner struct {
	recipes *fakeRecipeRepo
}

func (f *fakeTxRunner) RunRecipes(ctx context.Context, fn func(repository.RecipeRepository) error) error {
	return fn(f.recipes)
}

func newUseCase() (*recipe.UseCase, *fakeRecipeRepo) {
	recipes := &fakeRecipeRepo{byItem: map[string][]*entity.RecipeLine{}}
	menuItems := &fakeMenuItems{ids: map[string]bool{"item-latte": true}}
	return recipe.NewUseCase(&fakeTxRunner{recipes: recipes}, recipes, menuItems), recipes
}

func TestReplace_SwapsFullRecipe(t *testing.T) {
	uc, recipes := newUseCase()
	require.NoError(t, recipes.Add(context.Background(), &entity.RecipeLine{
		MenuItemID: "item-latte", IngredientID: "ing-old", Quantity: dec("1"),
	}))

	lines, err := uc.Replace(context.Background(), "item-latte", []dto.RecipeLineInput{
		{IngredientID: "ing-milk", Quantity: dec("0.2"), Unit: "l"},
		{IngredientID: "ing-coffee", Quantity: dec("0.02"), Unit: "kg"},
	})
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, "ing-milk", lines[0].IngredientID)
	assert.Equal(t, "ing-coffee", lines[1].IngredientID)
	for _, l := range lines {
		assert.NotEqual(t, "ing-old", l.IngredientID, "previous lines are gone")
	}
}

func TestReplace_EmptyListClearsRecipe(t *testing.T) {
	uc, recipes := newUseCase()
	require.NoError(t, recipes.Add(context.Background(), &entity.RecipeLine{
		MenuItemID: "item-latte", IngredientID: "ing-old", Quantity: dec("1"),
	}))

	lines, err := uc.Replace(context.Background(), "item-latte", nil)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReplace_UnknownItem(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Replace(context.Background(), "no-such-item", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplace_RejectsNegativeQuantity(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Replace(context.Background(), "item-latte", []dto.RecipeLineInput{
		{IngredientID: "ing-milk", Quantity: dec("-1")},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddLine_Validation(t *testing.T) {
	uc, _ := newUseCase()

	cases := []dto.AddRecipeLineRequest{
		{IngredientID: "ing-milk", Quantity: dec("1")},            // no item
		{MenuItemID: "item-latte", Quantity: dec("1")},            // no ingredient
		{MenuItemID: "item-latte", IngredientID: "ing-milk", Quantity: dec("-1")},
	}
	for i, in := range cases {
		_, err := uc.AddLine(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrValidation, "case %d", i)
	}
}

func TestAddLine_AppendsToRecipe(t *testing.T) {
	uc, recipes := newUseCase()

	line, err := uc.AddLine(context.Background(), dto.AddRecipeLineRequest{
		MenuItemID: "item-latte", IngredientID: "ing-milk", Quantity: dec("0.2"), Unit: "l",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, line.ID)
	assert.Len(t, recipes.byItem["item-latte"], 1)
}

func TestRemoveLine(t *testing.T) {
	uc, recipes := newUseCase()
	line, err := uc.AddLine(context.Background(), dto.AddRecipeLineRequest{
		MenuItemID: "item-latte", IngredientID: "ing-milk", Quantity: dec("0.2"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveLine(context.Background(), line.ID))
	assert.Empty(t, recipes.byItem["item-latte"])

	assert.ErrorIs(t, uc.RemoveLine(context.Background(), line.ID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.RemoveLine(context.Background(), ""), domain.ErrValidation)
}
