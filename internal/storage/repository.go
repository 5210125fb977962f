// Package storage is the SQLite-backed store implementation. Schema is
// managed by the embedded migrations in migrate.go.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"finview/internal/core"
	"finview/internal/store"
)

const timeLayout = time.RFC3339Nano

type Repository struct {
	db *sql.DB
}

var (
	_ store.TransactionStore = (*Repository)(nil)
	_ store.BudgetStore      = (*Repository)(nil)
)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// unavailable tags a driver failure with the store error taxonomy while
// keeping the underlying cause in the message.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, store.ErrUnavailable, err)
}

func (r *Repository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, amount_cents, description, category, date, created_at, updated_at
		FROM transactions
		ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, unavailable("list transactions", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list transactions", err)
	}
	return out, nil
}

func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = time.Time{}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, type, amount_cents, description, category, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)`,
		t.ID, string(t.Type), t.Amount.Cents, t.Description, t.Category,
		t.Date.Format("2006-01-02"), t.CreatedAt.Format(timeLayout))
	if err != nil {
		return core.Transaction{}, unavailable("create transaction", err)
	}
	return t, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, id string, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET type = ?, amount_cents = ?, description = ?, category = ?, date = ?, updated_at = ?
		WHERE id = ?`,
		string(t.Type), t.Amount.Cents, t.Description, t.Category,
		t.Date.Format("2006-01-02"), t.UpdatedAt.Format(timeLayout), id)
	if err != nil {
		return core.Transaction{}, unavailable("update transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, unavailable("update transaction", err)
	}
	if n == 0 {
		return core.Transaction{}, store.ErrNotFound
	}
	return r.GetTransaction(ctx, id)
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	// Deleting an absent id succeeds: the surrounding system treats
	// delete as idempotent.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return unavailable("delete transaction", err)
	}
	return nil
}

func (r *Repository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, amount_cents, description, category, date, created_at, updated_at
		FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, unavailable("get transaction", err)
	}
	return t, nil
}

func (r *Repository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, amount_cents, month, created_at, updated_at
		FROM budgets
		ORDER BY category ASC, id ASC`)
	if err != nil {
		return nil, unavailable("list budgets", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list budgets", err)
	}
	return out, nil
}

func (r *Repository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = time.Time{}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (id, category, amount_cents, month, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		b.ID, b.Category, b.Amount.Cents, b.Month, b.CreatedAt.Format(timeLayout))
	if err != nil {
		return core.Budget{}, unavailable("create budget", err)
	}
	return b, nil
}

func (r *Repository) UpdateBudget(ctx context.Context, id string, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	b.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE budgets
		SET category = ?, amount_cents = ?, month = ?, updated_at = ?
		WHERE id = ?`,
		b.Category, b.Amount.Cents, b.Month, b.UpdatedAt.Format(timeLayout), id)
	if err != nil {
		return core.Budget{}, unavailable("update budget", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Budget{}, unavailable("update budget", err)
	}
	if n == 0 {
		return core.Budget{}, store.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, category, amount_cents, month, created_at, updated_at
		FROM budgets WHERE id = ?`, id)
	got, err := scanBudget(row)
	if err != nil {
		return core.Budget{}, unavailable("get budget", err)
	}
	return got, nil
}

func (r *Repository) DeleteBudget(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id); err != nil {
		return unavailable("delete budget", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t         core.Transaction
		typ       string
		date      string
		createdAt string
		updatedAt sql.NullString
	)
	err := row.Scan(&t.ID, &typ, &t.Amount.Cents, &t.Description, &t.Category, &date, &createdAt, &updatedAt)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TransactionType(typ)
	if t.Date, err = time.Parse("2006-01-02", date); err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	if t.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if updatedAt.Valid {
		if t.UpdatedAt, err = time.Parse(timeLayout, updatedAt.String); err != nil {
			return core.Transaction{}, fmt.Errorf("parse updated_at %q: %w", updatedAt.String, err)
		}
	}
	return t, nil
}

func scanBudget(row rowScanner) (core.Budget, error) {
	var (
		b         core.Budget
		createdAt string
		updatedAt sql.NullString
	)
	err := row.Scan(&b.ID, &b.Category, &b.Amount.Cents, &b.Month, &createdAt, &updatedAt)
	if err != nil {
		return core.Budget{}, err
	}
	if b.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return core.Budget{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if updatedAt.Valid {
		if b.UpdatedAt, err = time.Parse(timeLayout, updatedAt.String); err != nil {
			return core.Budget{}, fmt.Errorf("parse updated_at %q: %w", updatedAt.String, err)
		}
	}
	return b, nil
}
