package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/warungpos/costing-api/internal/domain"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepository)(nil)

// MenuItemRepository reads menu items and writes their recalculated cost.
type MenuItemRepository struct {
	db Querier
}

// NewMenuItemRepository creates the repository on db (pool or transaction).
func NewMenuItemRepository(db Querier) *MenuItemRepository {
	return &MenuItemRepository{db: db}
}

const menuItemColumns = `id, outlet_id, category, name, price, COALESCE(cost, 0), is_active, updated_at`

// GetByID fetches one menu item, or (nil, nil) when it does not exist.
func (r *MenuItemRepository) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`

	var item entity.MenuItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.OutletID, &item.Category, &item.Name,
		&item.Price, &item.Cost, &item.IsActive, &item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &item, nil
}

// ListActive lists active menu items, optionally scoped to one outlet ("" = all).
func (r *MenuItemRepository) ListActive(ctx context.Context, outletID string) ([]*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE is_active = TRUE AND ($1 = '' OR outlet_id = $1)
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, outletID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var items []*entity.MenuItem
	for rows.Next() {
		var item entity.MenuItem
		err := rows.Scan(
			&item.ID, &item.OutletID, &item.Category, &item.Name,
			&item.Price, &item.Cost, &item.IsActive, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// UpdateCost writes the recalculated recipe cost.
func (r *MenuItemRepository) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE menu_items SET cost = $2, updated_at = now() WHERE id = $1`,
		id, cost,
	)
	if err != nil {
		return fmt.Errorf("update menu item cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
