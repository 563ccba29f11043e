package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/warungpos/costing-api/internal/application/ledger"
	"github.com/warungpos/costing-api/internal/application/recipe"
	"github.com/warungpos/costing-api/internal/domain/repository"
)

// Ensure TxRunner satisfies the application transaction ports.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ recipe.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with ledger repositories bound to it,
// and commits on success or rolls back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movements repository.MovementRepository,
	stock repository.StockItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovementRepository(tx), NewStockItemRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRecipes begins a transaction with a recipe repository bound to it, for
// the atomic full-recipe replace.
func (r *TxRunner) RunRecipes(ctx context.Context, fn func(recipes repository.RecipeRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRecipeRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
