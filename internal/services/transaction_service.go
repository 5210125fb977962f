// Package services orchestrates writes across the local store and the
// AMQP change feed. Stores stay pure persistence; publishing lives here.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"finview/internal/amqp"
	"finview/internal/core"
	"finview/internal/store"
)

// EventPublisher is the slice of the AMQP client the service needs.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, id, action string) error
	Close() error
}

// TransactionService saves transactions locally and announces changes
// on AMQP. The local write is authoritative; a failed publish is logged
// and the request still succeeds.
type TransactionService struct {
	transactions store.TransactionStore
	publisher    EventPublisher
}

func NewTransactionService(transactions store.TransactionStore, publisher EventPublisher) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		publisher:    publisher,
	}
}

// Create saves the transaction locally and publishes a created event.
func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	saved, err := s.transactions.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	if err := s.publish(ctx, saved.ID, amqp.ActionCreated); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", saved.ID, "action", amqp.ActionCreated, "error", err)
		// Don't fail the request - the transaction is saved locally
	}

	return saved, nil
}

// Update replaces a transaction and publishes an updated event.
func (s *TransactionService) Update(ctx context.Context, id string, t core.Transaction) (core.Transaction, error) {
	saved, err := s.transactions.UpdateTransaction(ctx, id, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	if err := s.publish(ctx, id, amqp.ActionUpdated); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", id, "action", amqp.ActionUpdated, "error", err)
	}

	return saved, nil
}

// Delete removes a transaction and publishes a deleted event. Absent
// ids delete cleanly, so the event may name a record that never existed;
// consumers treat that as already gone.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.transactions.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.publish(ctx, id, amqp.ActionDeleted); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", id, "action", amqp.ActionDeleted, "error", err)
	}

	return nil
}

// List and Get pass straight through to the store.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.transactions.ListTransactions(ctx)
}

func (s *TransactionService) Get(ctx context.Context, id string) (core.Transaction, error) {
	return s.transactions.GetTransaction(ctx, id)
}

func (s *TransactionService) publish(ctx context.Context, id, action string) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping event",
			"transaction_id", id, "action", action)
		return nil
	}
	return s.publisher.PublishTransactionEvent(ctx, id, action)
}

// Close closes the publisher. The store's connection is owned by the
// backend and closed there.
func (s *TransactionService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close transaction service: %w", err)
	}
	return nil
}
