package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dchitadze/fathersquotes/dbx"
	"github.com/dchitadze/fathersquotes/events"
	"github.com/dchitadze/fathersquotes/models"
	"github.com/dchitadze/fathersquotes/timex"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Mutations publish events.Favorites on the optional bus.
type SQLiteRepository struct {
	db  dbx.DBTX
	bus *events.Bus
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
// bus may be nil.
func NewSQLiteRepository(db dbx.DBTX, bus *events.Bus) *SQLiteRepository {
	return &SQLiteRepository{db: db, bus: bus}
}

func (r *SQLiteRepository) IsFavorite(ctx context.Context, quoteID string) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT quote_id FROM favorites WHERE quote_id = ? LIMIT 1`, quoteID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check favorite %s: %w", quoteID, err)
	}
	return true, nil
}

func (r *SQLiteRepository) Add(ctx context.Context, quoteID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (quote_id, added_at) VALUES (?, ?)
		ON CONFLICT(quote_id) DO UPDATE SET added_at = excluded.added_at
	`, quoteID, timex.Format(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to add favorite %s: %w", quoteID, err)
	}
	r.bus.Publish(events.Favorites)
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, quoteID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE quote_id = ?`, quoteID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite %s: %w", quoteID, err)
	}
	r.bus.Publish(events.Favorites)
	return nil
}

func (r *SQLiteRepository) Toggle(ctx context.Context, quoteID string) (bool, error) {
	fav, err := r.IsFavorite(ctx, quoteID)
	if err != nil {
		return false, err
	}
	if fav {
		if err := r.Remove(ctx, quoteID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := r.Add(ctx, quoteID); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SQLiteRepository) IDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT quote_id FROM favorites`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite ids: %w", err)
	}
	defer rows.Close()

	result := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListQuotes(ctx context.Context, limit int) ([]models.FavoriteQuote, error) {
	query := `
		SELECT
			q.id, q.author_id, q.text_ka, q.text_ru, q.created_at, fav.added_at,
			a.name_ka, a.name_ru, a.avatar_path
		FROM favorites fav
		JOIN quotes q ON q.id = fav.quote_id
		JOIN authors a ON a.id = q.author_id
		ORDER BY fav.added_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite quotes: %w", err)
	}
	defer rows.Close()

	var result []models.FavoriteQuote
	for rows.Next() {
		var item models.FavoriteQuote
		var textRU, nameRU sql.NullString
		var createdAt, addedAt string
		if err := rows.Scan(&item.ID, &item.AuthorID, &item.TextKA, &textRU, &createdAt, &addedAt,
			&item.AuthorNameKA, &nameRU, &item.AuthorAvatarPath); err != nil {
			return nil, err
		}
		item.TextRU = dbx.StringPtr(textRU)
		item.AuthorNameRU = dbx.StringPtr(nameRU)
		if item.CreatedAt, err = timex.Parse(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse favorite %s created_at: %w", item.ID, err)
		}
		if item.AddedAt, err = timex.Parse(addedAt); err != nil {
			return nil, fmt.Errorf("failed to parse favorite %s added_at: %w", item.ID, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveByQuoteID is the cascade hook used by incremental sync when a quote
// loses local visibility. Unlike Remove it does not publish; the syncer
// publishes once per pass.
func (r *SQLiteRepository) RemoveByQuoteID(ctx context.Context, quoteID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE quote_id = ?`, quoteID)
	if err != nil {
		return fmt.Errorf("failed to cascade favorite %s: %w", quoteID, err)
	}
	return nil
}
