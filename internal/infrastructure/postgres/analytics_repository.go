package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// AnalyticsRepository serves read-only aggregates over sales and movements.
type AnalyticsRepository struct {
	db Querier
}

// NewAnalyticsRepository creates the repository on db (pool or transaction).
func NewAnalyticsRepository(db Querier) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

const theoreticalUsageQuery = `
	SELECT r.ingredient_id, i.name, i.unit, COALESCE(SUM(ti.quantity * r.quantity), 0)
	FROM transaction_items ti
	JOIN transactions t ON t.id = ti.transaction_id
	JOIN recipes r ON r.item_id = ti.item_id
	JOIN ingredients i ON i.id = r.ingredient_id
	WHERE t.status = 'completed'
	  AND t.created_at >= $1 AND t.created_at <= $2
	  AND ($3 = '' OR t.outlet_id = $3)
	GROUP BY r.ingredient_id, i.name, i.unit
	ORDER BY i.name`

// TheoreticalUsage sums sold quantity times recipe quantity per ingredient
// over completed transactions in the period.
func (r *AnalyticsRepository) TheoreticalUsage(ctx context.Context, outletID string, from, to time.Time) ([]repository.IngredientUsage, error) {
	return r.queryUsage(ctx, theoreticalUsageQuery, outletID, from, to)
}

const actualUsageQuery = `
	SELECT m.ingredient_id, i.name, i.unit, COALESCE(SUM(m.quantity), 0)
	FROM stock_movements m
	JOIN ingredients i ON i.id = m.ingredient_id
	WHERE m.type IN ('OUT', 'adjustment_out')
	  AND m.created_at >= $1 AND m.created_at <= $2
	  AND ($3 = '' OR m.outlet_id = $3)
	GROUP BY m.ingredient_id, i.name, i.unit
	ORDER BY i.name`

// ActualUsage sums outbound ingredient movements in the period.
func (r *AnalyticsRepository) ActualUsage(ctx context.Context, outletID string, from, to time.Time) ([]repository.IngredientUsage, error) {
	return r.queryUsage(ctx, actualUsageQuery, outletID, from, to)
}

func (r *AnalyticsRepository) queryUsage(ctx context.Context, query, outletID string, from, to time.Time) ([]repository.IngredientUsage, error) {
	rows, err := r.db.Query(ctx, query, from, to, outletID)
	if err != nil {
		return nil, fmt.Errorf("query ingredient usage: %w", err)
	}
	defer rows.Close()

	var usages []repository.IngredientUsage
	for rows.Next() {
		var u repository.IngredientUsage
		if err := rows.Scan(&u.IngredientID, &u.Name, &u.Unit, &u.Quantity); err != nil {
			return nil, fmt.Errorf("scan ingredient usage: %w", err)
		}
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query ingredient usage: %w", err)
	}
	return usages, nil
}

const salesByMenuItemQuery = `
	SELECT ti.item_id, COALESCE(SUM(ti.quantity), 0), COALESCE(SUM(ti.subtotal), 0), COUNT(DISTINCT t.id)
	FROM transaction_items ti
	JOIN transactions t ON t.id = ti.transaction_id
	WHERE t.status = 'completed'
	  AND t.created_at >= $1 AND t.created_at <= $2
	  AND ($3 = '' OR t.outlet_id = $3)
	GROUP BY ti.item_id`

// SalesByMenuItem aggregates completed sale lines per menu item in the period.
func (r *AnalyticsRepository) SalesByMenuItem(ctx context.Context, outletID string, from, to time.Time) ([]repository.MenuItemSales, error) {
	rows, err := r.db.Query(ctx, salesByMenuItemQuery, from, to, outletID)
	if err != nil {
		return nil, fmt.Errorf("query item sales: %w", err)
	}
	defer rows.Close()

	var sales []repository.MenuItemSales
	for rows.Next() {
		var s repository.MenuItemSales
		if err := rows.Scan(&s.MenuItemID, &s.Quantity, &s.Revenue, &s.OrderCount); err != nil {
			return nil, fmt.Errorf("scan item sales: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query item sales: %w", err)
	}
	return sales, nil
}

const revenueTotalQuery = `
	SELECT COALESCE(SUM(total), 0)
	FROM transactions
	WHERE status = 'completed'
	  AND created_at >= $1 AND created_at <= $2
	  AND ($3 = '' OR outlet_id = $3)`

// RevenueTotal sums completed transaction totals in the period.
func (r *AnalyticsRepository) RevenueTotal(ctx context.Context, outletID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, revenueTotalQuery, from, to, outletID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("query revenue total: %w", err)
	}
	return total, nil
}

const purchaseTotalQuery = `
	SELECT COALESCE(SUM(total_cost), 0)
	FROM stock_movements
	WHERE type = 'IN'
	  AND created_at >= $1 AND created_at <= $2
	  AND ($3 = '' OR outlet_id = $3)`

// PurchaseTotal sums IN-movement total costs in the period.
func (r *AnalyticsRepository) PurchaseTotal(ctx context.Context, outletID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, purchaseTotalQuery, from, to, outletID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("query purchase total: %w", err)
	}
	return total, nil
}
