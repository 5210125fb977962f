package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finview/internal/core"
	"finview/internal/store"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "finview.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.CreateTransaction(ctx, core.Transaction{
		Type:        core.Expense,
		Amount:      core.Money{Cents: 5000},
		Description: "groceries",
		Category:    "food",
		Date:        day(2025, 9, 3),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("missing store-assigned fields: %+v", created)
	}

	got, err := repo.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount.Cents != 5000 || got.Category != "food" || !got.Date.Equal(day(2025, 9, 3)) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.UpdatedAt.IsZero() {
		t.Fatalf("fresh row must have no updated_at: %+v", got)
	}

	// Same values, new amount: amount applied, createdAt kept, updatedAt set.
	upd := got
	upd.Amount = core.Money{Cents: 7500}
	updated, err := repo.UpdateTransaction(ctx, created.ID, upd)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount.Cents != 7500 {
		t.Fatalf("amount not applied: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt drifted: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatal("updatedAt not set on update")
	}
}

func TestTransactionListOrderingContract(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	dates := []time.Time{day(2025, 6, 1), day(2025, 9, 28), day(2025, 1, 15), day(2025, 9, 2)}
	for i, d := range dates {
		_, err := repo.CreateTransaction(ctx, core.Transaction{
			Type:        core.Expense,
			Amount:      core.Money{Cents: int64(100 + i)},
			Description: "t",
			Category:    "food",
			Date:        d,
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	list, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != len(dates) {
		t.Fatalf("len=%d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.After(list[i-1].Date) {
			t.Fatalf("not date-descending at %d: %v after %v", i, list[i].Date, list[i-1].Date)
		}
	}
}

func TestTransactionNotFoundAndIdempotentDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.UpdateTransaction(ctx, "missing", core.Transaction{
		Type: core.Expense, Amount: core.Money{Cents: 1}, Description: "x", Date: day(2025, 9, 1),
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get missing: %v", err)
	}
	if err := repo.DeleteTransaction(ctx, "missing"); err != nil {
		t.Fatalf("delete missing must succeed: %v", err)
	}

	created, err := repo.CreateTransaction(ctx, core.Transaction{
		Type: core.Income, Amount: core.Money{Cents: 100}, Description: "pay", Category: "salary", Date: day(2025, 9, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ := repo.ListTransactions(ctx)
	if len(list) != 0 {
		t.Fatalf("deleted record still listed: %+v", list)
	}
}

func TestTransactionValidationRejectedBeforeWrite(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.CreateTransaction(ctx, core.Transaction{Type: "transfer"}); err == nil {
		t.Fatal("expected validation error")
	}
	list, _ := repo.ListTransactions(ctx)
	if len(list) != 0 {
		t.Fatal("invalid write reached the database")
	}
}

func TestBudgetRoundTripAndOrdering(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, cat := range []string{"shopping", "food", "transport"} {
		_, err := repo.CreateBudget(ctx, core.Budget{
			Category: cat,
			Amount:   core.Money{Cents: 20000},
			Month:    "2025-09",
		})
		if err != nil {
			t.Fatalf("create %s: %v", cat, err)
		}
	}

	list, err := repo.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"food", "shopping", "transport"}
	for i, b := range list {
		if b.Category != want[i] {
			t.Fatalf("order: got %q at %d", b.Category, i)
		}
		if b.Month != "2025-09" {
			t.Fatalf("month token lost: %+v", b)
		}
	}

	first := list[0]
	upd := first
	upd.Amount = core.Money{Cents: 1234}
	updated, err := repo.UpdateBudget(ctx, first.ID, upd)
	if err != nil || updated.Amount.Cents != 1234 {
		t.Fatalf("update: %+v, %v", updated, err)
	}
	if !updated.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("createdAt drifted on budget update")
	}

	if _, err := repo.UpdateBudget(ctx, "missing", upd); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
	if err := repo.DeleteBudget(ctx, "missing"); err != nil {
		t.Fatalf("delete missing must succeed: %v", err)
	}
	if err := repo.DeleteBudget(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = repo.ListBudgets(ctx)
	if len(list) != 2 {
		t.Fatalf("len after delete = %d", len(list))
	}
}
