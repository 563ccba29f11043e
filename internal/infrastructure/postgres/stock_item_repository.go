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

var _ repository.StockItemRepository = (*StockItemRepository)(nil)

// stockTable maps a target kind to its table and column names. Ingredients
// and inventory items live in separate tables with their own naming.
type stockTable struct {
	name      string
	qty       string
	cost      string
	threshold string
}

func tableFor(kind entity.StockKind) stockTable {
	if kind == entity.KindIngredient {
		return stockTable{name: "ingredients", qty: "stock", cost: "cost_per_unit", threshold: "min_threshold"}
	}
	return stockTable{name: "inventory_items", qty: "current_stock", cost: "unit_cost", threshold: "min_stock"}
}

// StockItemRepository reads and writes ingredient / inventory-item balances.
type StockItemRepository struct {
	db Querier
}

// NewStockItemRepository creates the repository on db (pool or transaction).
func NewStockItemRepository(db Querier) *StockItemRepository {
	return &StockItemRepository{db: db}
}

// Get fetches the stock item, or (nil, nil) when it does not exist.
func (r *StockItemRepository) Get(ctx context.Context, target entity.StockTarget) (*entity.StockItem, error) {
	return r.get(ctx, target, "")
}

// GetForUpdate fetches the stock item with a row lock held until the
// enclosing transaction ends.
func (r *StockItemRepository) GetForUpdate(ctx context.Context, target entity.StockTarget) (*entity.StockItem, error) {
	return r.get(ctx, target, " FOR UPDATE")
}

func (r *StockItemRepository) get(ctx context.Context, target entity.StockTarget, suffix string) (*entity.StockItem, error) {
	t := tableFor(target.Kind)
	query := fmt.Sprintf(
		`SELECT id, outlet_id, name, unit, %s, %s, %s, is_active, updated_at FROM %s WHERE id = $1%s`,
		t.qty, t.cost, t.threshold, t.name, suffix,
	)

	var (
		item entity.StockItem
		id   string
	)
	err := r.db.QueryRow(ctx, query, target.ID).Scan(
		&id, &item.OutletID, &item.Name, &item.Unit,
		&item.Quantity, &item.UnitCost, &item.MinThreshold,
		&item.IsActive, &item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	item.Target = entity.StockTarget{Kind: target.Kind, ID: id}
	return &item, nil
}

// SetQuantity writes the new balance. A non-nil unitCost also overwrites the
// stored unit cost (last purchase price).
func (r *StockItemRepository) SetQuantity(ctx context.Context, target entity.StockTarget, quantity decimal.Decimal, unitCost *decimal.Decimal) error {
	t := tableFor(target.Kind)

	var (
		query string
		args  []any
	)
	if unitCost != nil {
		query = fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, updated_at = now() WHERE id = $1`, t.name, t.qty, t.cost)
		args = []any{target.ID, quantity, *unitCost}
	} else {
		query = fmt.Sprintf(`UPDATE %s SET %s = $2, updated_at = now() WHERE id = $1`, t.name, t.qty)
		args = []any{target.ID, quantity}
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
