// Package worker mirrors transaction change events into the sheet
// journal. It consumes AMQP events, re-reads the record from the store
// and appends one journal row per event.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finview/internal/amqp"
	"finview/internal/core"
	"finview/internal/sheets"
	"finview/internal/store"
)

// MirrorWorker replays transaction change events into an external sheet.
type MirrorWorker struct {
	transactions store.TransactionStore
	writer       sheets.ChangeWriter
}

func NewMirrorWorker(transactions store.TransactionStore, writer sheets.ChangeWriter) *MirrorWorker {
	return &MirrorWorker{
		transactions: transactions,
		writer:       writer,
	}
}

// HandleEvent processes one change event. Created and updated events
// re-read the record so the journal reflects the stored state, not the
// payload that happened to ride the event. A record deleted between
// publish and consume is journaled as deleted.
func (w *MirrorWorker) HandleEvent(ctx context.Context, event *amqp.TransactionEvent) error {
	slog.InfoContext(ctx, "Processing transaction event",
		"transaction_id", event.ID,
		"action", event.Action)

	if w.writer == nil {
		slog.WarnContext(ctx, "No sheet writer configured, skipping event",
			"transaction_id", event.ID)
		return nil
	}

	action := event.Action
	var record core.Transaction

	switch action {
	case amqp.ActionCreated, amqp.ActionUpdated:
		t, err := w.transactions.GetTransaction(ctx, event.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Superseded by a later delete; journal the tombstone.
				action = amqp.ActionDeleted
				record = core.Transaction{ID: event.ID}
				break
			}
			return fmt.Errorf("get transaction %s: %w", event.ID, err)
		}
		record = t
	case amqp.ActionDeleted:
		record = core.Transaction{ID: event.ID}
	default:
		return fmt.Errorf("unknown action %q", event.Action)
	}

	ref, err := w.writer.AppendChange(ctx, action, record)
	if err != nil {
		return fmt.Errorf("append journal row: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored transaction event",
		"transaction_id", event.ID,
		"action", action,
		"sheet_ref", ref)
	return nil
}
