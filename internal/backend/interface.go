// Package backend selects and wires a persistence backend from
// configuration: the stores, the transaction service with its optional
// AMQP publisher, and the cleanup for both.
package backend

import (
	"context"

	"finview/internal/services"
	"finview/internal/store"
)

// Backend bundles the two persistence ports every backend must serve.
type Backend interface {
	store.TransactionStore
	store.BudgetStore
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result is a wired backend. Transactions routes writes through the
// change-event publisher; Stores is the raw persistence underneath,
// which budget handlers and the mirror worker use directly.
type Result struct {
	Stores       Backend
	Transactions *services.TransactionService
	Cleanup      CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}
