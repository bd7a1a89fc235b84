package syncstate

import (
	"context"
	"errors"
	"time"
)

// ErrMissingRow is reported when a setter finds no sync_state row to update.
// Reads tolerate the absent row; writes must not silently create state.
var ErrMissingRow = errors.New("sync state row missing")

// Repository describes the sync bookkeeping singleton: the initial-sync gate
// and the incremental-sync checkpoint.
type Repository interface {
	// InitialSyncCompleted reports whether the one-time bulk sync finished.
	// A missing row reads as false, never as an error.
	InitialSyncCompleted(ctx context.Context) (bool, error)

	// SetInitialSyncCompleted records the bulk-sync gate. Returns
	// ErrMissingRow when the singleton row is absent.
	SetInitialSyncCompleted(ctx context.Context, completed bool) error

	// LastSyncAt returns the incremental checkpoint, or nil when no
	// successful sync has been recorded yet.
	LastSyncAt(ctx context.Context) (*time.Time, error)

	// SetLastSyncAt advances the checkpoint. Returns ErrMissingRow when the
	// singleton row is absent.
	SetLastSyncAt(ctx context.Context, t time.Time) error
}
