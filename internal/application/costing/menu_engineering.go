package costing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/application/dto"
	"github.com/warungpos/costing-api/internal/domain/costing"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

// MenuEngineeringUseCase buckets active menu items into the
// profitability/popularity matrix (star / plowhorse / puzzle / dog / new)
// against population averages for a period.
type MenuEngineeringUseCase struct {
	menuItems repository.MenuItemRepository
	recipes   repository.RecipeRepository
	analytics repository.AnalyticsRepository
}

// NewMenuEngineeringUseCase builds the usecase.
func NewMenuEngineeringUseCase(
	menuItems repository.MenuItemRepository,
	recipes repository.RecipeRepository,
	analytics repository.AnalyticsRepository,
) *MenuEngineeringUseCase {
	return &MenuEngineeringUseCase{menuItems: menuItems, recipes: recipes, analytics: analytics}
}

// Report classifies every active item in the outlet ("" = all outlets).
// Food cost is recipe-derived when a recipe exists, otherwise the stored cost.
func (uc *MenuEngineeringUseCase) Report(ctx context.Context, outletID string, from, to time.Time) (*dto.MenuEngineeringReport, error) {
	items, err := uc.menuItems.ListActive(ctx, outletID)
	if err != nil {
		return nil, err
	}
	linesByItem, err := uc.recipes.ListByOutlet(ctx, outletID)
	if err != nil {
		return nil, err
	}
	sales, err := uc.analytics.SalesByMenuItem(ctx, outletID, from, to)
	if err != nil {
		return nil, err
	}
	salesByItem := make(map[string]repository.MenuItemSales, len(sales))
	for _, s := range sales {
		salesByItem[s.MenuItemID] = s
	}

	metrics := make([]dto.MenuItemMetricsDTO, 0, len(items))
	withSales := 0
	sumMargin := decimal.Zero
	sumQuantity := decimal.Zero
	for _, item := range items {
		foodCost := item.Cost
		if lines := linesByItem[item.ID]; len(lines) > 0 {
			foodCost, _ = itemCost(lines)
		}
		sale := salesByItem[item.ID]

		grossProfit := item.Price.Sub(foodCost)
		margin := costing.GrossMarginPercent(foodCost, item.Price)
		metrics = append(metrics, dto.MenuItemMetricsDTO{
			ItemID:       item.ID,
			ItemName:     item.Name,
			Category:     item.Category,
			SellingPrice: item.Price,
			FoodCost:     costing.Round2(foodCost),
			GrossProfit:  costing.Round2(grossProfit),
			ProfitMargin: costing.Round2(margin),
			QuantitySold: sale.Quantity,
			Revenue:      costing.Round2(sale.Revenue),
			TotalProfit:  costing.Round2(grossProfit.Mul(sale.Quantity)),
			OrderCount:   sale.OrderCount,
		})
		if sale.Quantity.GreaterThan(decimal.Zero) {
			withSales++
			sumMargin = sumMargin.Add(margin)
			sumQuantity = sumQuantity.Add(sale.Quantity)
		}
	}

	// Population averages over items that sold at least one unit. With no
	// sales at all, the margin average falls back to the fixed default so the
	// comparison does not degenerate.
	avgMargin := costing.DefaultAverageMargin
	avgQuantity := decimal.Zero
	if withSales > 0 {
		n := decimal.NewFromInt(int64(withSales))
		avgMargin = sumMargin.Div(n)
		avgQuantity = sumQuantity.Div(n)
	}

	report := &dto.MenuEngineeringReport{Data: make([]dto.MenuItemMetricsDTO, 0, len(metrics))}
	totalRevenue := decimal.Zero
	totalProfit := decimal.Zero
	for _, m := range metrics {
		class := costing.ClassifyMenuItem(m.ProfitMargin, m.QuantitySold, avgMargin, avgQuantity)
		m.Classification = class
		m.Recommendation = costing.Recommendation(class)
		report.Data = append(report.Data, m)

		switch class {
		case costing.ClassStar:
			report.Matrix.Stars = append(report.Matrix.Stars, m)
			report.Summary.Counts.Stars++
		case costing.ClassPlowhorse:
			report.Matrix.Plowhorses = append(report.Matrix.Plowhorses, m)
			report.Summary.Counts.Plowhorses++
		case costing.ClassPuzzle:
			report.Matrix.Puzzles = append(report.Matrix.Puzzles, m)
			report.Summary.Counts.Puzzles++
		case costing.ClassDog:
			report.Matrix.Dogs = append(report.Matrix.Dogs, m)
			report.Summary.Counts.Dogs++
		case costing.ClassNew:
			report.Matrix.New = append(report.Matrix.New, m)
			report.Summary.Counts.New++
		}
		totalRevenue = totalRevenue.Add(m.Revenue)
		totalProfit = totalProfit.Add(m.TotalProfit)
	}

	report.Summary.Period = dto.Period{StartDate: from, EndDate: to}
	report.Summary.TotalItems = len(metrics)
	report.Summary.ItemsWithSales = withSales
	report.Summary.AvgProfitMargin = costing.Round2(avgMargin)
	report.Summary.AvgQuantitySold = costing.Round2(avgQuantity)
	report.Summary.TotalRevenue = costing.Round2(totalRevenue)
	report.Summary.TotalProfit = costing.Round2(totalProfit)
	if totalRevenue.GreaterThan(decimal.Zero) {
		report.Summary.OverallProfitMargin = costing.Round2(
			totalProfit.Div(totalRevenue).Mul(decimal.NewFromInt(100)))
	}
	return report, nil
}
