package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warungpos/costing-api/internal/application/ledger"
	"github.com/warungpos/costing-api/internal/domain"
	"github.com/warungpos/costing-api/internal/domain/entity"
	"github.com/warungpos/costing-api/internal/domain/repository"
	"github.com/warungpos/costing-api/pkg/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ── in-memory fakes ──────────────────────────────────────────────────────────

type fakeStockRepo struct {
	items map[string]*entity.StockItem
}

func (f *fakeStockRepo) Get(_ context.Context, target entity.StockTarget) (*entity.StockItem, error) {
	item, ok := f.items[target.ID]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (f *fakeStockRepo) GetForUpdate(ctx context.Context, target entity.StockTarget) (*entity.StockItem, error) {
	return f.Get(ctx, target)
}

func (f *fakeStockRepo) SetQuantity(_ context.Context, target entity.StockTarget, quantity decimal.Decimal, unitCost *decimal.Decimal) error {
	item, ok := f.items[target.ID]
	if !ok {
		return domain.ErrNotFound
	}
	item.Quantity = quantity
	if unitCost != nil {
		item.UnitCost = *unitCost
	}
	item.UpdatedAt = time.Now()
	return nil
}

type fakeMovementRepo struct {
	rows []*entity.Movement
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	copied := *m
	f.rows = append(f.rows, &copied)
	return nil
}

func (f *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range f.rows {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) Delete(_ context.Context, id string) error {
	for i, m := range f.rows {
		if m.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeMovementRepo) LatestIDForTarget(_ context.Context, target entity.StockTarget) (string, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].Target == target {
			return f.rows[i].ID, nil
		}
	}
	return "", nil
}

func (f *fakeMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0, len(f.rows))
	for i := len(f.rows) - 1; i >= 0; i-- {
		m := f.rows[i]
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		copied := *m
		out = append(out, &copied)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) Summary(_ context.Context, _ string, _, _ *time.Time) (*repository.MovementSummary, error) {
	var s repository.MovementSummary
	for _, m := range f.rows {
		switch m.Type {
		case entity.MovementTypeIN:
			s.InCount++
			s.InTotalCost = s.InTotalCost.Add(m.TotalCost)
		case entity.MovementTypeOUT:
			s.OutCount++
			s.OutTotalCost = s.OutTotalCost.Add(m.TotalCost)
		case entity.MovementTypeADJUST:
			s.AdjustCount++
		}
	}
	return &s, nil
}

// fakeTxRunner hands the shared fakes to the callback; no real transaction.
type fakeTxRunner struct {
	movements repository.MovementRepository
	stock     repository.StockItemRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.StockItemRepository) error) error {
	return fn(f.movements, f.stock)
}

type fakeExpenseRecorder struct {
	calls []recordedPurchase
	err   error
}

type recordedPurchase struct {
	movement *entity.Movement
	itemName string
	itemUnit string
}

func (f *fakeExpenseRecorder) RecordPurchase(_ context.Context, _ entity.Scope, m *entity.Movement, itemName, itemUnit string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, recordedPurchase{movement: m, itemName: itemName, itemUnit: itemUnit})
	return nil
}

// ── fixture ──────────────────────────────────────────────────────────────────

var (
	testScope = entity.Scope{OutletID: "outlet-1", UserID: "user-1"}
	flour     = entity.IngredientTarget("ing-flour")
)

type fixture struct {
	uc       *ledger.UseCase
	stock    *fakeStockRepo
	moves    *fakeMovementRepo
	expenses *fakeExpenseRecorder
}

func newFixture() *fixture {
	stock := &fakeStockRepo{items: map[string]*entity.StockItem{
		flour.ID: {
			Target:   flour,
			OutletID: testScope.OutletID,
			Name:     "Flour",
			Unit:     "kg",
			Quantity: dec("100"),
			UnitCost: decimal.Zero,
			IsActive: true,
		},
	}}
	moves := &fakeMovementRepo{}
	expenses := &fakeExpenseRecorder{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := ledger.NewUseCase(&fakeTxRunner{movements: moves, stock: stock}, moves, expenses, log)
	return &fixture{uc: uc, stock: stock, moves: moves, expenses: expenses}
}

func (f *fixture) apply(t *testing.T, in ledger.MovementInput) *entity.Movement {
	t.Helper()
	m, err := f.uc.ApplyMovement(context.Background(), testScope, in)
	require.NoError(t, err)
	return m
}

func price(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ── ApplyMovement ────────────────────────────────────────────────────────────

func TestApplyMovement_INAddsStockAndFreezesSnapshots(t *testing.T) {
	f := newFixture()

	m := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeIN,
		Quantity: dec("50"), UnitPrice: price("2000"),
	})

	assert.True(t, dec("100").Equal(m.StockBefore), "before: %s", m.StockBefore)
	assert.True(t, dec("150").Equal(m.StockAfter), "after: %s", m.StockAfter)
	assert.True(t, dec("100000").Equal(m.TotalCost), "total cost: %s", m.TotalCost)
	assert.Equal(t, testScope.UserID, m.CreatedBy)
	assert.Equal(t, testScope.OutletID, m.OutletID)

	item := f.stock.items[flour.ID]
	assert.True(t, dec("150").Equal(item.Quantity))
	assert.True(t, dec("2000").Equal(item.UnitCost), "IN with price overwrites unit cost")
}

func TestApplyMovement_INRecordsPurchaseExpense(t *testing.T) {
	f := newFixture()

	m := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeIN,
		Quantity: dec("50"), UnitPrice: price("2000"),
	})

	require.Len(t, f.expenses.calls, 1)
	call := f.expenses.calls[0]
	assert.Equal(t, m.ID, call.movement.ID)
	assert.Equal(t, "Flour", call.itemName)
	assert.Equal(t, "kg", call.itemUnit)
}

func TestApplyMovement_INWithoutPriceKeepsCostAndSkipsExpense(t *testing.T) {
	f := newFixture()
	f.stock.items[flour.ID].UnitCost = dec("1800")

	m := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeIN, Quantity: dec("10"),
	})

	assert.True(t, m.TotalCost.IsZero())
	assert.True(t, dec("1800").Equal(f.stock.items[flour.ID].UnitCost), "stored cost untouched")
	assert.Empty(t, f.expenses.calls, "no expense without a positive total cost")
}

func TestApplyMovement_OUTSubtractsStock(t *testing.T) {
	f := newFixture()

	m := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeOUT, Quantity: dec("30"),
	})

	assert.True(t, dec("100").Equal(m.StockBefore))
	assert.True(t, dec("70").Equal(m.StockAfter))
	assert.True(t, dec("70").Equal(f.stock.items[flour.ID].Quantity))
	assert.Empty(t, f.expenses.calls)
}

func TestApplyMovement_ADJUSTSetsAbsoluteBalance(t *testing.T) {
	f := newFixture()

	m := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeADJUST,
		Quantity: dec("42"), UnitPrice: price("2000"),
	})

	assert.True(t, dec("100").Equal(m.StockBefore))
	assert.True(t, dec("42").Equal(m.StockAfter))
	assert.True(t, m.TotalCost.IsZero(), "ADJUST never carries a cost")
	assert.True(t, dec("42").Equal(f.stock.items[flour.ID].Quantity))
	assert.Empty(t, f.expenses.calls)
}

func TestApplyMovement_RejectsNegativeResult(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ApplyMovement(context.Background(), testScope, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeOUT, Quantity: dec("200"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidStock)
	assert.True(t, dec("100").Equal(f.stock.items[flour.ID].Quantity), "balance untouched")
	assert.Empty(t, f.moves.rows, "no ledger entry written")
}

func TestApplyMovement_UnknownItem(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ApplyMovement(context.Background(), testScope, ledger.MovementInput{
		Target: entity.IngredientTarget("ing-missing"), Type: entity.MovementTypeIN, Quantity: dec("1"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_ValidationErrors(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name string
		in   ledger.MovementInput
	}{
		{"no target", ledger.MovementInput{Type: entity.MovementTypeIN, Quantity: dec("1")}},
		{"bad type", ledger.MovementInput{Target: flour, Type: "TRANSFER", Quantity: dec("1")}},
		{"legacy type rejected on write", ledger.MovementInput{Target: flour, Type: entity.MovementTypeAdjustmentOut, Quantity: dec("1")}},
		{"zero quantity IN", ledger.MovementInput{Target: flour, Type: entity.MovementTypeIN, Quantity: decimal.Zero}},
		{"negative quantity OUT", ledger.MovementInput{Target: flour, Type: entity.MovementTypeOUT, Quantity: dec("-5")}},
		{"negative ADJUST balance", ledger.MovementInput{Target: flour, Type: entity.MovementTypeADJUST, Quantity: dec("-1")}},
		{"negative price", ledger.MovementInput{Target: flour, Type: entity.MovementTypeIN, Quantity: dec("1"), UnitPrice: price("-10")}},
	}
	for _, tc := range cases {
		_, err := f.uc.ApplyMovement(context.Background(), testScope, tc.in)
		assert.ErrorIs(t, err, domain.ErrValidation, tc.name)
	}
	assert.Empty(t, f.moves.rows)
}

func TestApplyMovement_ADJUSTToZeroIsAllowed(t *testing.T) {
	f := newFixture()

	m := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeADJUST, Quantity: decimal.Zero,
	})

	assert.True(t, m.StockAfter.IsZero())
	assert.True(t, f.stock.items[flour.ID].Quantity.IsZero())
}

func TestApplyMovement_ExpenseFailureDoesNotFailTheMovement(t *testing.T) {
	f := newFixture()
	f.expenses.err = errors.New("expense service down")

	m, err := f.uc.ApplyMovement(context.Background(), testScope, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeIN,
		Quantity: dec("50"), UnitPrice: price("2000"),
	})

	require.NoError(t, err)
	assert.True(t, dec("150").Equal(f.stock.items[flour.ID].Quantity))
	got, err := f.uc.GetMovement(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID, "ledger entry persisted despite the expense failure")
}

// ── DeleteMovement ───────────────────────────────────────────────────────────

func TestDeleteMovement_RestoresSnapshot(t *testing.T) {
	f := newFixture()
	m := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeIN,
		Quantity: dec("50"), UnitPrice: price("2000"),
	})
	require.True(t, dec("150").Equal(f.stock.items[flour.ID].Quantity))

	err := f.uc.DeleteMovement(context.Background(), testScope, m.ID, "typed wrong quantity")
	require.NoError(t, err)

	assert.True(t, dec("100").Equal(f.stock.items[flour.ID].Quantity), "balance restored to the frozen stock_before")
	gone, err := f.uc.GetMovement(context.Background(), m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, gone)
}

func TestDeleteMovement_RejectsNonLatest(t *testing.T) {
	f := newFixture()
	first := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeIN, Quantity: dec("50"), UnitPrice: price("2000"),
	})
	f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeOUT, Quantity: dec("20"),
	})

	err := f.uc.DeleteMovement(context.Background(), testScope, first.ID, "wrong entry")

	assert.ErrorIs(t, err, domain.ErrNotLatestMovement)
	assert.True(t, dec("130").Equal(f.stock.items[flour.ID].Quantity), "nothing rolled back")
}

// racingStockRepo commits another writer's movement the moment the row lock
// is requested, like a concurrent apply finishing while the delete waits.
type racingStockRepo struct {
	*fakeStockRepo
	moves  *fakeMovementRepo
	inject *entity.Movement
	fired  bool
}

func (r *racingStockRepo) GetForUpdate(ctx context.Context, target entity.StockTarget) (*entity.StockItem, error) {
	if !r.fired && r.inject.Target == target {
		r.fired = true
		if err := r.moves.Create(ctx, r.inject); err != nil {
			return nil, err
		}
		if err := r.fakeStockRepo.SetQuantity(ctx, target, r.inject.StockAfter, nil); err != nil {
			return nil, err
		}
	}
	return r.fakeStockRepo.GetForUpdate(ctx, target)
}

func TestDeleteMovement_RejectsWhenConcurrentWriteLandsFirst(t *testing.T) {
	f := newFixture()
	victim := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeIN, Quantity: dec("50"), UnitPrice: price("2000"),
	})

	racing := &racingStockRepo{
		fakeStockRepo: f.stock,
		moves:         f.moves,
		inject: &entity.Movement{
			ID:          "mov-concurrent",
			OutletID:    testScope.OutletID,
			Target:      flour,
			Type:        entity.MovementTypeOUT,
			Quantity:    dec("10"),
			StockBefore: dec("150"),
			StockAfter:  dec("140"),
			CreatedBy:   "user-2",
			CreatedAt:   time.Now(),
		},
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := ledger.NewUseCase(&fakeTxRunner{movements: f.moves, stock: racing}, f.moves, f.expenses, log)

	err := uc.DeleteMovement(context.Background(), testScope, victim.ID, "wrong quantity")

	assert.ErrorIs(t, err, domain.ErrNotLatestMovement)
	assert.True(t, dec("140").Equal(f.stock.items[flour.ID].Quantity), "concurrent balance kept, no stale rollback")
	kept, err := f.uc.GetMovement(context.Background(), victim.ID)
	require.NoError(t, err)
	assert.Equal(t, victim.ID, kept.ID, "entry not deleted")
}

func TestDeleteMovement_RequiresReason(t *testing.T) {
	f := newFixture()
	m := f.apply(t, ledger.MovementInput{
		Target: flour, Type: entity.MovementTypeOUT, Quantity: dec("10"),
	})

	for _, reason := range []string{"", "   "} {
		err := f.uc.DeleteMovement(context.Background(), testScope, m.ID, reason)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestDeleteMovement_NotFound(t *testing.T) {
	f := newFixture()

	err := f.uc.DeleteMovement(context.Background(), testScope, "no-such-id", "cleanup")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── reads ────────────────────────────────────────────────────────────────────

func TestSummary_AggregatesByType(t *testing.T) {
	f := newFixture()
	f.apply(t, ledger.MovementInput{Target: flour, Type: entity.MovementTypeIN, Quantity: dec("50"), UnitPrice: price("2000")})
	f.apply(t, ledger.MovementInput{Target: flour, Type: entity.MovementTypeIN, Quantity: dec("10"), UnitPrice: price("2500")})
	f.apply(t, ledger.MovementInput{Target: flour, Type: entity.MovementTypeOUT, Quantity: dec("30")})
	f.apply(t, ledger.MovementInput{Target: flour, Type: entity.MovementTypeADJUST, Quantity: dec("100")})

	s, err := f.uc.Summary(context.Background(), testScope.OutletID, nil, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 2, s.InCount)
	assert.True(t, dec("125000").Equal(s.InTotalCost), "in total: %s", s.InTotalCost)
	assert.EqualValues(t, 1, s.OutCount)
	assert.EqualValues(t, 1, s.AdjustCount)
}

func TestListMovements_NewestFirst(t *testing.T) {
	f := newFixture()
	f.apply(t, ledger.MovementInput{Target: flour, Type: entity.MovementTypeIN, Quantity: dec("5"), UnitPrice: price("100")})
	out := f.apply(t, ledger.MovementInput{Target: flour, Type: entity.MovementTypeOUT, Quantity: dec("2")})

	movements, err := f.uc.ListMovements(context.Background(), repository.MovementFilter{OutletID: testScope.OutletID})
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, out.ID, movements[0].ID)
}
