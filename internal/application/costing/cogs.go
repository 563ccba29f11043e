package costing

import (
	"context"
	"time"

	"github.com/warungpos/costing-api/internal/application/dto"
	"github.com/warungpos/costing-api/internal/domain/costing"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

// COGSUseCase produces the period profit-and-loss style summary. Purchases
// (IN-movement total cost) stand in for COGS directly; no beginning/ending
// inventory delta is computed.
type COGSUseCase struct {
	analytics repository.AnalyticsRepository
}

// NewCOGSUseCase builds the usecase.
func NewCOGSUseCase(analytics repository.AnalyticsRepository) *COGSUseCase {
	return &COGSUseCase{analytics: analytics}
}

// Summary aggregates revenue, purchases, gross profit and food-cost banding
// for the period ("" outletID = all outlets).
func (uc *COGSUseCase) Summary(ctx context.Context, outletID string, from, to time.Time) (*dto.COGSSummaryDTO, error) {
	revenue, err := uc.analytics.RevenueTotal(ctx, outletID, from, to)
	if err != nil {
		return nil, err
	}
	purchases, err := uc.analytics.PurchaseTotal(ctx, outletID, from, to)
	if err != nil {
		return nil, err
	}

	grossProfit := revenue.Sub(purchases)
	grossMargin := costing.GrossMarginPercent(purchases, revenue)
	foodCostPct := costing.FoodCostPercent(purchases, revenue)
	return &dto.COGSSummaryDTO{
		Period:            dto.Period{StartDate: from, EndDate: to},
		TotalRevenue:      costing.Round2(revenue),
		TotalPurchases:    costing.Round2(purchases),
		EstimatedCOGS:     costing.Round2(purchases),
		GrossProfit:       costing.Round2(grossProfit),
		GrossProfitMargin: costing.Round2(grossMargin),
		FoodCostPercent:   costing.Round2(foodCostPct),
		HealthIndicator:   costing.COGSHealth(foodCostPct),
	}, nil
}
