package costing

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/application/dto"
	"github.com/warungpos/costing-api/internal/domain"
	"github.com/warungpos/costing-api/internal/domain/costing"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

// RecipeCostUseCase rolls a menu item's bill of materials up into an
// ingredient cost and classifies it against the selling price. Everything is
// recomputed from storage on each call; nothing is cached.
type RecipeCostUseCase struct {
	menuItems repository.MenuItemRepository
	recipes   repository.RecipeRepository
}

// NewRecipeCostUseCase builds the usecase.
func NewRecipeCostUseCase(menuItems repository.MenuItemRepository, recipes repository.RecipeRepository) *RecipeCostUseCase {
	return &RecipeCostUseCase{menuItems: menuItems, recipes: recipes}
}

// itemCost sums quantity × ingredient unit cost over the recipe lines.
func itemCost(lines []*entity.RecipeLine) (decimal.Decimal, []dto.RecipeCostLineDTO) {
	total := decimal.Zero
	breakdown := make([]dto.RecipeCostLineDTO, 0, len(lines))
	for _, l := range lines {
		lineCost := costing.LineCost(l.Quantity, l.CostPerUnit)
		total = total.Add(lineCost)
		unit := l.Unit
		if unit == "" {
			unit = l.IngredientUnit
		}
		breakdown = append(breakdown, dto.RecipeCostLineDTO{
			IngredientID:   l.IngredientID,
			IngredientName: l.IngredientName,
			Quantity:       l.Quantity,
			Unit:           unit,
			CostPerUnit:    l.CostPerUnit,
			LineCost:       lineCost,
		})
	}
	return total, breakdown
}

// List computes the recipe-derived cost of every active menu item in the
// outlet ("" = all outlets), with a population summary.
func (uc *RecipeCostUseCase) List(ctx context.Context, outletID string) (*dto.RecipeCostReport, error) {
	items, err := uc.menuItems.ListActive(ctx, outletID)
	if err != nil {
		return nil, err
	}
	linesByItem, err := uc.recipes.ListByOutlet(ctx, outletID)
	if err != nil {
		return nil, err
	}

	report := &dto.RecipeCostReport{Data: make([]dto.RecipeCostDTO, 0, len(items))}
	sumFoodCost := decimal.Zero
	for _, item := range items {
		lines := linesByItem[item.ID]
		ingredientCost, breakdown := itemCost(lines)

		foodCostPct := costing.FoodCostPercent(ingredientCost, item.Price)
		health := costing.FoodCostHealth(foodCostPct)
		row := dto.RecipeCostDTO{
			ItemID:          item.ID,
			ItemName:        item.Name,
			Category:        item.Category,
			SellingPrice:    item.Price,
			IngredientCost:  costing.Round2(ingredientCost),
			FoodCostPercent: costing.Round2(foodCostPct),
			GrossProfit:     costing.Round2(item.Price.Sub(ingredientCost)),
			GrossMargin:     costing.Round2(costing.GrossMarginPercent(ingredientCost, item.Price)),
			CostHealth:      health,
			Breakdown:       breakdown,
			HasRecipe:       len(lines) > 0,
		}
		report.Data = append(report.Data, row)

		report.Summary.TotalItems++
		if row.HasRecipe {
			report.Summary.ItemsWithRecipe++
			sumFoodCost = sumFoodCost.Add(foodCostPct)
		} else {
			report.Summary.ItemsWithoutRecipe++
		}
		switch health {
		case costing.HealthCritical:
			report.Summary.CriticalItems++
		case costing.HealthWarning:
			report.Summary.WarningItems++
		}
	}
	if report.Summary.ItemsWithRecipe > 0 {
		avg := sumFoodCost.Div(decimal.NewFromInt(int64(report.Summary.ItemsWithRecipe)))
		report.Summary.AvgFoodCostPercent = costing.Round2(avg)
	} else {
		report.Summary.AvgFoodCostPercent = decimal.Zero
	}
	return report, nil
}

// Recalculate persists the recipe-derived ingredient cost onto the menu
// item's stored cost field.
func (uc *RecipeCostUseCase) Recalculate(ctx context.Context, menuItemID string) (*dto.RecalculateResultDTO, error) {
	item, err := uc.menuItems.GetByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.recipes.ListByMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	newCost, _ := itemCost(lines)
	if err := uc.menuItems.UpdateCost(ctx, menuItemID, newCost); err != nil {
		return nil, err
	}
	return &dto.RecalculateResultDTO{
		ItemID:   item.ID,
		ItemName: item.Name,
		OldCost:  item.Cost,
		NewCost:  newCost,
	}, nil
}

// RecalculateAll refreshes every active item in the outlet and reports how
// many stored costs actually changed.
func (uc *RecipeCostUseCase) RecalculateAll(ctx context.Context, outletID string) (*dto.BulkRecalculateResultDTO, error) {
	items, err := uc.menuItems.ListActive(ctx, outletID)
	if err != nil {
		return nil, err
	}
	linesByItem, err := uc.recipes.ListByOutlet(ctx, outletID)
	if err != nil {
		return nil, err
	}
	result := &dto.BulkRecalculateResultDTO{TotalItems: len(items)}
	for _, item := range items {
		newCost, _ := itemCost(linesByItem[item.ID])
		if newCost.Equal(item.Cost) {
			continue
		}
		if err := uc.menuItems.UpdateCost(ctx, item.ID, newCost); err != nil {
			return nil, err
		}
		result.UpdatedItems++
	}
	return result, nil
}
