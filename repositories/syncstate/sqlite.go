package syncstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dchitadze/fathersquotes/dbx"
	"github.com/dchitadze/fathersquotes/timex"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) InitialSyncCompleted(ctx context.Context) (bool, error) {
	var completed int
	err := r.db.QueryRowContext(ctx,
		`SELECT initial_sync_completed FROM sync_state WHERE id = 1`).Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read initial sync flag: %w", err)
	}
	return completed != 0, nil
}

func (r *SQLiteRepository) SetInitialSyncCompleted(ctx context.Context, completed bool) error {
	v := 0
	if completed {
		v = 1
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE sync_state SET initial_sync_completed = ? WHERE id = 1`, v)
	if err != nil {
		return fmt.Errorf("failed to set initial sync flag: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) LastSyncAt(ctx context.Context) (*time.Time, error) {
	var lastSync sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT last_sync_at FROM sync_state WHERE id = 1`).Scan(&lastSync)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last sync time: %w", err)
	}
	if !lastSync.Valid {
		return nil, nil
	}
	t, err := timex.Parse(lastSync.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last sync time: %w", err)
	}
	return &t, nil
}

func (r *SQLiteRepository) SetLastSyncAt(ctx context.Context, t time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sync_state SET last_sync_at = ? WHERE id = 1`, timex.Format(t))
	if err != nil {
		return fmt.Errorf("failed to set last sync time: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n != 1 {
		return ErrMissingRow
	}
	return nil
}
