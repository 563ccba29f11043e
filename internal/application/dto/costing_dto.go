package dto

import "github.com/shopspring/decimal"

// RecipeCostLineDTO one ingredient's contribution to a menu item's cost.
type RecipeCostLineDTO struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	LineCost       decimal.Decimal `json:"line_cost"`
}

// RecipeCostDTO recipe-derived costing of one menu item.
type RecipeCostDTO struct {
	ItemID          string              `json:"item_id"`
	ItemName        string              `json:"item_name"`
	Category        string              `json:"category"`
	SellingPrice    decimal.Decimal     `json:"selling_price"`
	IngredientCost  decimal.Decimal     `json:"ingredient_cost"`
	FoodCostPercent decimal.Decimal     `json:"food_cost_percent"`
	GrossProfit     decimal.Decimal     `json:"gross_profit"`
	GrossMargin     decimal.Decimal     `json:"gross_margin"`
	CostHealth      string              `json:"cost_health"`
	Breakdown       []RecipeCostLineDTO `json:"ingredient_breakdown"`
	HasRecipe       bool                `json:"has_recipe"`
}

// RecipeCostSummaryDTO population stats over a recipe-cost listing.
type RecipeCostSummaryDTO struct {
	TotalItems         int             `json:"total_items"`
	ItemsWithRecipe    int             `json:"items_with_recipe"`
	ItemsWithoutRecipe int             `json:"items_without_recipe"`
	AvgFoodCostPercent decimal.Decimal `json:"avg_food_cost_percent"`
	CriticalItems      int             `json:"critical_items"`
	WarningItems       int             `json:"warning_items"`
}

// RecipeCostReport body for GET /api/costing/recipes.
type RecipeCostReport struct {
	Data    []RecipeCostDTO      `json:"data"`
	Summary RecipeCostSummaryDTO `json:"summary"`
}

// RecalculateResultDTO outcome of persisting one item's recipe cost.
type RecalculateResultDTO struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	OldCost  decimal.Decimal `json:"old_cost"`
	NewCost  decimal.Decimal `json:"new_cost"`
}

// BulkRecalculateResultDTO outcome of a bulk recalculation.
type BulkRecalculateResultDTO struct {
	TotalItems   int `json:"total_items"`
	UpdatedItems int `json:"updated_items"`
}

// VarianceRowDTO actual-vs-theoretical usage of one ingredient.
type VarianceRowDTO struct {
	IngredientID     string          `json:"ingredient_id"`
	IngredientName   string          `json:"ingredient_name"`
	Unit             string          `json:"unit"`
	TheoreticalUsage decimal.Decimal `json:"theoretical_usage"`
	ActualUsage      decimal.Decimal `json:"actual_usage"`
	Variance         decimal.Decimal `json:"variance"`
	VariancePercent  decimal.Decimal `json:"variance_percent"`
	VarianceHealth   string          `json:"variance_health"`
	PossibleCause    string          `json:"possible_cause"`
}

// VarianceSummaryDTO aggregate view of a variance report.
type VarianceSummaryDTO struct {
	Period                 Period          `json:"period"`
	TotalIngredients       int             `json:"total_ingredients"`
	CriticalVariances      int             `json:"critical_variances"`
	WarningVariances       int             `json:"warning_variances"`
	OverallVariancePercent decimal.Decimal `json:"overall_variance_percent"`
	PotentialWasteValue    decimal.Decimal `json:"potential_waste_value"`
}

// VarianceReport body for GET /api/costing/variance.
type VarianceReport struct {
	Data    []VarianceRowDTO   `json:"data"`
	Summary VarianceSummaryDTO `json:"summary"`
}

// MenuItemMetricsDTO one classified menu item in the engineering matrix.
type MenuItemMetricsDTO struct {
	ItemID         string          `json:"item_id"`
	ItemName       string          `json:"item_name"`
	Category       string          `json:"category"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	FoodCost       decimal.Decimal `json:"food_cost"`
	GrossProfit    decimal.Decimal `json:"gross_profit"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"`
	QuantitySold   decimal.Decimal `json:"quantity_sold"`
	Revenue        decimal.Decimal `json:"revenue"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	OrderCount     int64           `json:"order_count"`
	Classification string          `json:"classification"`
	Recommendation string          `json:"recommendation"`
}

// MenuMatrixDTO items grouped by classification bucket.
type MenuMatrixDTO struct {
	Stars      []MenuItemMetricsDTO `json:"stars"`
	Plowhorses []MenuItemMetricsDTO `json:"plowhorses"`
	Puzzles    []MenuItemMetricsDTO `json:"puzzles"`
	Dogs       []MenuItemMetricsDTO `json:"dogs"`
	New        []MenuItemMetricsDTO `json:"new"`
}

// MenuClassCountsDTO per-bucket item counts.
type MenuClassCountsDTO struct {
	Stars      int `json:"stars"`
	Plowhorses int `json:"plowhorses"`
	Puzzles    int `json:"puzzles"`
	Dogs       int `json:"dogs"`
	New        int `json:"new"`
}

// MenuEngineeringSummaryDTO aggregate view of a menu-engineering report.
type MenuEngineeringSummaryDTO struct {
	Period              Period             `json:"period"`
	TotalItems          int                `json:"total_items"`
	ItemsWithSales      int                `json:"items_with_sales"`
	AvgProfitMargin     decimal.Decimal    `json:"avg_profit_margin"`
	AvgQuantitySold     decimal.Decimal    `json:"avg_quantity_sold"`
	TotalRevenue        decimal.Decimal    `json:"total_revenue"`
	TotalProfit         decimal.Decimal    `json:"total_profit"`
	OverallProfitMargin decimal.Decimal    `json:"overall_profit_margin"`
	Counts              MenuClassCountsDTO `json:"counts"`
}

// MenuEngineeringReport body for GET /api/costing/menu-engineering.
type MenuEngineeringReport struct {
	Data    []MenuItemMetricsDTO      `json:"data"`
	Matrix  MenuMatrixDTO             `json:"matrix"`
	Summary MenuEngineeringSummaryDTO `json:"summary"`
}

// COGSSummaryDTO body for GET /api/costing/cogs-summary.
type COGSSummaryDTO struct {
	Period            Period          `json:"period"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalPurchases    decimal.Decimal `json:"total_purchases"`
	EstimatedCOGS     decimal.Decimal `json:"estimated_cogs"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	GrossProfitMargin decimal.Decimal `json:"gross_profit_margin"`
	FoodCostPercent   decimal.Decimal `json:"food_cost_percent"`
	HealthIndicator   string          `json:"health_indicator"`
}
