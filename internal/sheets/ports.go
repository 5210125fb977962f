package sheets

import (
	"context"

	"finview/internal/core"
)

// ChangeWriter mirrors transaction changes into an external sheet. The
// mirror is an append-only journal: updates and deletes append new rows
// rather than editing earlier ones.
type ChangeWriter interface {
	// AppendChange writes one journal row and returns its range reference.
	// For deleted records the transaction carries only the ID.
	AppendChange(ctx context.Context, action string, t core.Transaction) (rowRef string, err error)
}
