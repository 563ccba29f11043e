package costing

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/application/dto"
	"github.com/warungpos/costing-api/internal/domain/costing"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

// VarianceUseCase compares theoretical ingredient consumption (completed sales
// × recipe quantities) against actual consumption (outbound ledger movements)
// over a period.
type VarianceUseCase struct {
	analytics repository.AnalyticsRepository
}

// NewVarianceUseCase builds the usecase.
func NewVarianceUseCase(analytics repository.AnalyticsRepository) *VarianceUseCase {
	return &VarianceUseCase{analytics: analytics}
}

// Report builds the per-ingredient variance table for the union of
// ingredients appearing on either side, sorted by absolute variance percent
// descending. With no sales and no outbound movements the result is empty.
func (uc *VarianceUseCase) Report(ctx context.Context, outletID string, from, to time.Time) (*dto.VarianceReport, error) {
	theoretical, err := uc.analytics.TheoreticalUsage(ctx, outletID, from, to)
	if err != nil {
		return nil, err
	}
	actual, err := uc.analytics.ActualUsage(ctx, outletID, from, to)
	if err != nil {
		return nil, err
	}

	type side struct {
		name     string
		unit     string
		quantity decimal.Decimal
	}
	theoByID := make(map[string]side, len(theoretical))
	for _, u := range theoretical {
		theoByID[u.IngredientID] = side{name: u.Name, unit: u.Unit, quantity: u.Quantity}
	}
	actByID := make(map[string]side, len(actual))
	for _, u := range actual {
		actByID[u.IngredientID] = side{name: u.Name, unit: u.Unit, quantity: u.Quantity}
	}

	ids := make([]string, 0, len(theoByID)+len(actByID))
	for id := range theoByID {
		ids = append(ids, id)
	}
	for id := range actByID {
		if _, seen := theoByID[id]; !seen {
			ids = append(ids, id)
		}
	}

	report := &dto.VarianceReport{Data: make([]dto.VarianceRowDTO, 0, len(ids))}
	totalTheoretical := decimal.Zero
	totalActual := decimal.Zero
	for _, id := range ids {
		theo := theoByID[id]
		act := actByID[id]

		variance := act.quantity.Sub(theo.quantity)
		pct := costing.VariancePercent(variance, theo.quantity)
		health := costing.VarianceHealth(pct)

		name := theo.name
		if name == "" {
			name = act.name
		}
		unit := theo.unit
		if unit == "" {
			unit = act.unit
		}
		report.Data = append(report.Data, dto.VarianceRowDTO{
			IngredientID:     id,
			IngredientName:   name,
			Unit:             unit,
			TheoreticalUsage: costing.Round2(theo.quantity),
			ActualUsage:      costing.Round2(act.quantity),
			Variance:         costing.Round2(variance),
			VariancePercent:  costing.Round2(pct),
			VarianceHealth:   health,
			PossibleCause:    costing.VarianceCause(variance),
		})
		totalTheoretical = totalTheoretical.Add(theo.quantity)
		totalActual = totalActual.Add(act.quantity)

		switch health {
		case costing.HealthCritical:
			report.Summary.CriticalVariances++
			if variance.GreaterThan(decimal.Zero) {
				report.Summary.PotentialWasteValue = report.Summary.PotentialWasteValue.Add(variance)
			}
		case costing.HealthWarning:
			report.Summary.WarningVariances++
		}
	}

	sort.SliceStable(report.Data, func(i, j int) bool {
		return report.Data[i].VariancePercent.Abs().GreaterThan(report.Data[j].VariancePercent.Abs())
	})

	report.Summary.Period = dto.Period{StartDate: from, EndDate: to}
	report.Summary.TotalIngredients = len(report.Data)
	report.Summary.OverallVariancePercent = costing.Round2(
		costing.VariancePercent(totalActual.Sub(totalTheoretical), totalTheoretical))
	return report, nil
}
