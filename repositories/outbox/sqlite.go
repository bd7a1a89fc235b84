package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dchitadze/fathersquotes/dbx"
	"github.com/dchitadze/fathersquotes/events"
	"github.com/dchitadze/fathersquotes/models"
	"github.com/dchitadze/fathersquotes/timex"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Mutations publish events.Outbox on the optional bus.
type SQLiteRepository struct {
	db  dbx.DBTX
	bus *events.Bus
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
// bus may be nil.
func NewSQLiteRepository(db dbx.DBTX, bus *events.Bus) *SQLiteRepository {
	return &SQLiteRepository{db: db, bus: bus}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, message string, contact *string, lang models.Language) (string, error) {
	id := uuid.NewString()

	var contactVal sql.NullString
	if contact != nil {
		if trimmed := strings.TrimSpace(*contact); trimmed != "" {
			contactVal = sql.NullString{String: trimmed, Valid: true}
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback_outbox (id, message, contact, language, created_at, status)
		VALUES (?, ?, ?, ?, ?, 'pending')
	`, id, strings.TrimSpace(message), contactVal, string(lang), timex.Format(time.Now()))
	if err != nil {
		return "", fmt.Errorf("failed to enqueue feedback: %w", err)
	}
	r.bus.Publish(events.Outbox)
	return id, nil
}

func (r *SQLiteRepository) Pending(ctx context.Context, limit int) ([]models.OutboxEntry, error) {
	query := `
		SELECT id, message, contact, language, created_at, status, last_error
		FROM feedback_outbox
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending outbox entries: %w", err)
	}
	defer rows.Close()

	var result []models.OutboxEntry
	for rows.Next() {
		var e models.OutboxEntry
		var contact, lastError sql.NullString
		var lang, createdAt string
		if err := rows.Scan(&e.ID, &e.Message, &contact, &lang, &createdAt, &e.Status, &lastError); err != nil {
			return nil, err
		}
		e.Contact = dbx.StringPtr(contact)
		e.LastError = dbx.StringPtr(lastError)
		e.Language = models.Language(lang)
		if e.CreatedAt, err = timex.Parse(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse outbox %s created_at: %w", e.ID, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE feedback_outbox SET status = 'sent', last_error = NULL WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark outbox entry %s sent: %w", id, err)
	}
	r.bus.Publish(events.Outbox)
	return nil
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id string, deliveryErr string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE feedback_outbox SET status = 'failed', last_error = ? WHERE id = ?`, deliveryErr, id)
	if err != nil {
		return fmt.Errorf("failed to mark outbox entry %s failed: %w", id, err)
	}
	r.bus.Publish(events.Outbox)
	return nil
}

func (r *SQLiteRepository) RetryFailed(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE feedback_outbox SET status = 'pending' WHERE status = 'failed'`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset failed outbox entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		r.bus.Publish(events.Outbox)
	}
	return n, nil
}
