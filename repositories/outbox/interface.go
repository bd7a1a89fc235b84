package outbox

import (
	"context"

	"github.com/dchitadze/fathersquotes/models"
)

// Repository describes the durable feedback outbox: entries queued while
// offline and flushed opportunistically by the feedback service.
type Repository interface {
	// Enqueue stores a new pending entry with a freshly generated id,
	// trimming whitespace from the message and contact. Returns the id.
	Enqueue(ctx context.Context, message string, contact *string, lang models.Language) (string, error)

	// Pending lists pending entries oldest-first, up to limit.
	Pending(ctx context.Context, limit int) ([]models.OutboxEntry, error)

	// MarkSent transitions an entry pending→sent and clears the last error.
	MarkSent(ctx context.Context, id string) error

	// MarkFailed transitions an entry pending→failed, recording the delivery
	// error for a later retry.
	MarkFailed(ctx context.Context, id string, deliveryErr string) error

	// RetryFailed resets every failed entry back to pending and returns how
	// many were reset. Used by the manual retry-all affordance.
	RetryFailed(ctx context.Context) (int64, error)
}
