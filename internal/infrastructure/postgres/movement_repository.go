package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/warungpos/costing-api/internal/domain"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepository)(nil)

// MovementRepository persists stock ledger entries.
type MovementRepository struct {
	db Querier
}

// NewMovementRepository creates the repository on db (pool or transaction).
func NewMovementRepository(db Querier) *MovementRepository {
	return &MovementRepository{db: db}
}

const movementColumns = `
	id, outlet_id, COALESCE(ingredient_id, ''), COALESCE(inventory_id, ''),
	type, quantity, unit_price, total_cost, stock_before, stock_after,
	COALESCE(supplier_id, ''), supplier, invoice_number, notes,
	created_by, created_at`

const insertMovementQuery = `
	INSERT INTO stock_movements (
		id, outlet_id, ingredient_id, inventory_id, type, quantity,
		unit_price, total_cost, stock_before, stock_after, supplier_id,
		supplier, invoice_number, notes, created_by, created_at
	) VALUES (
		$1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6,
		$7, $8, $9, $10, NULLIF($11, ''),
		$12, $13, $14, $15, $16
	)`

// Create inserts the movement. Assigns an id when the caller left it empty.
func (r *MovementRepository) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	var ingredientID, inventoryID string
	if m.Target.Kind == entity.KindIngredient {
		ingredientID = m.Target.ID
	} else {
		inventoryID = m.Target.ID
	}

	_, err := r.db.Exec(ctx, insertMovementQuery,
		m.ID, m.OutletID, ingredientID, inventoryID, m.Type, m.Quantity,
		m.UnitPrice, m.TotalCost, m.StockBefore, m.StockAfter, m.SupplierID,
		m.Supplier, m.InvoiceNumber, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID fetches one movement, or (nil, nil) when it does not exist.
func (r *MovementRepository) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Delete removes the movement row.
func (r *MovementRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LatestIDForTarget returns the id of the target's most recent movement, or ""
// when the target has none.
func (r *MovementRepository) LatestIDForTarget(ctx context.Context, target entity.StockTarget) (string, error) {
	col := "inventory_id"
	if target.Kind == entity.KindIngredient {
		col = "ingredient_id"
	}
	query := fmt.Sprintf(
		`SELECT id FROM stock_movements WHERE %s = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, col,
	)

	var id string
	err := r.db.QueryRow(ctx, query, target.ID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("latest movement: %w", err)
	}
	return id, nil
}

// List returns movements matching the filter, newest first.
func (r *MovementRepository) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT` + movementColumns + ` FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1

	if f.OutletID != "" {
		query += fmt.Sprintf(" AND outlet_id = $%d", pos)
		args = append(args, f.OutletID)
		pos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.Target != nil {
		col := "inventory_id"
		if f.Target.Kind == entity.KindIngredient {
			col = "ingredient_id"
		}
		query += fmt.Sprintf(" AND %s = $%d", col, pos)
		args = append(args, f.Target.ID)
		pos++
	}
	if f.SupplierID != "" {
		query += fmt.Sprintf(" AND supplier_id = $%d", pos)
		args = append(args, f.SupplierID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}

// Summary aggregates counts and cost totals by type over the period.
func (r *MovementRepository) Summary(ctx context.Context, outletID string, from, to *time.Time) (*repository.MovementSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE type = 'IN'),
			COALESCE(SUM(total_cost) FILTER (WHERE type = 'IN'), 0),
			COUNT(*) FILTER (WHERE type = 'OUT'),
			COALESCE(SUM(total_cost) FILTER (WHERE type = 'OUT'), 0),
			COUNT(*) FILTER (WHERE type = 'ADJUST')
		FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1

	if outletID != "" {
		query += fmt.Sprintf(" AND outlet_id = $%d", pos)
		args = append(args, outletID)
		pos++
	}
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}

	var s repository.MovementSummary
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.InCount, &s.InTotalCost, &s.OutCount, &s.OutTotalCost, &s.AdjustCount,
	)
	if err != nil {
		return nil, fmt.Errorf("movement summary: %w", err)
	}
	return &s, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m            entity.Movement
		ingredientID string
		inventoryID  string
	)
	err := row.Scan(
		&m.ID, &m.OutletID, &ingredientID, &inventoryID,
		&m.Type, &m.Quantity, &m.UnitPrice, &m.TotalCost,
		&m.StockBefore, &m.StockAfter,
		&m.SupplierID, &m.Supplier, &m.InvoiceNumber, &m.Notes,
		&m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ingredientID != "" {
		m.Target = entity.IngredientTarget(ingredientID)
	} else {
		m.Target = entity.InventoryItemTarget(inventoryID)
	}
	return &m, nil
}
