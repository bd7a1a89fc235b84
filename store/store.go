// Package store owns the embedded SQLite database: opening, schema
// migrations, the diagnostic wipe, and transaction access for the sync
// cascade. Everything else reads and writes through the repositories.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dchitadze/fathersquotes/dbx"
	"github.com/dchitadze/fathersquotes/store/migrations"

	_ "modernc.org/sqlite"
)

// Store wraps the process-wide database handle. Construct it once at startup
// and pass it by reference; there is no package-level global.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at dsn and applies
// pending migrations. A failure here is fatal to the app: without the local
// store no data access is possible, so the error always surfaces.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// DB exposes the underlying handle for repository construction.
func (s *Store) DB() *sql.DB { return s.db }

// InTx runs fn inside a single transaction.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, s.db, nil, fn)
}

// Wipe is the diagnostic reset: it clears every mirrored and user-local
// table, resets sync bookkeeping so the next launch performs a fresh bulk
// sync, and restores the default settings row.
func (s *Store) Wipe(ctx context.Context) error {
	return s.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		stmts := []string{
			`DELETE FROM quotes`,
			`DELETE FROM authors`,
			`DELETE FROM favorites`,
			`DELETE FROM feedback_outbox`,
			`UPDATE sync_state SET initial_sync_completed = 0, last_sync_at = NULL WHERE id = 1`,
			`DELETE FROM settings`,
			`INSERT INTO settings (id, language) VALUES (1, 'ka')`,
		}
		for _, q := range stmts {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				return fmt.Errorf("failed to wipe local data: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
