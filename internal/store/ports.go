// Package store defines the persistence ports the rest of the system
// consumes, plus the shared error taxonomy. Implementations live in
// store/memory and storage (SQLite).
package store

import (
	"context"
	"errors"

	"finview/internal/core"
)

var (
	// ErrNotFound is returned by Update when the identifier is absent.
	// Delete deliberately tolerates absent identifiers instead.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable wraps driver or connection failures. Stores never
	// retry internally; callers surface the failure.
	ErrUnavailable = errors.New("store unavailable")
)

// Ports for the two collections. Stores own identifier assignment and
// timestamping; validation runs before any mutation so writes are never
// partially applied.
type (
	TransactionStore interface {
		// ListTransactions returns every transaction ordered by date
		// descending, newest createdAt first within a date. The ordering
		// is part of the contract, not incidental.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)

		// CreateTransaction assigns the id and createdAt, then persists.
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)

		// UpdateTransaction replaces the mutable fields and refreshes
		// updatedAt, keeping createdAt. ErrNotFound when id is absent.
		UpdateTransaction(ctx context.Context, id string, t core.Transaction) (core.Transaction, error)

		// DeleteTransaction removes the record. Deleting an absent id is
		// not an error.
		DeleteTransaction(ctx context.Context, id string) error

		// GetTransaction fetches one record by id. ErrNotFound when absent.
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	}

	BudgetStore interface {
		// ListBudgets returns every budget ordered by category ascending.
		ListBudgets(ctx context.Context) ([]core.Budget, error)

		CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)

		UpdateBudget(ctx context.Context, id string, b core.Budget) (core.Budget, error)

		// DeleteBudget removes the record; absent ids succeed.
		DeleteBudget(ctx context.Context, id string) error
	}
)
