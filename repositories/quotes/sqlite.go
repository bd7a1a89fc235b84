package quotes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dchitadze/fathersquotes/dbx"
	"github.com/dchitadze/fathersquotes/models"
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

func (r *SQLiteRepository) GetLatest(ctx context.Context, limit int) ([]models.LatestQuote, error) {
	query := `
		SELECT
			q.id, q.author_id, q.text_ka, q.text_ru, q.created_at,
			a.name_ka, a.name_ru, a.avatar_path
		FROM quotes q
		JOIN authors a ON a.id = q.author_id
		ORDER BY q.created_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select latest quotes: %w", err)
	}
	defer rows.Close()

	var result []models.LatestQuote
	for rows.Next() {
		var item models.LatestQuote
		var textRU, authorNameRU sql.NullString
		var createdAt string
		if err := rows.Scan(&item.ID, &item.AuthorID, &item.TextKA, &textRU, &createdAt,
			&item.AuthorNameKA, &authorNameRU, &item.AuthorAvatarPath); err != nil {
			return nil, err
		}
		item.TextRU = dbx.StringPtr(textRU)
		item.AuthorNameRU = dbx.StringPtr(authorNameRU)
		if item.CreatedAt, err = timex.Parse(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse quote %s created_at: %w", item.ID, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.QuoteDetails, error) {
	query := `
		SELECT
			q.id, q.author_id, q.text_ka, q.text_ru, q.source_ka, q.source_ru, q.quote_date,
			a.name_ka, a.name_ru, a.avatar_path, a.profile_path
		FROM quotes q
		JOIN authors a ON a.id = q.author_id
		WHERE q.id = ?
		LIMIT 1
	`
	var d models.QuoteDetails
	var textRU, sourceKA, sourceRU, quoteDate, nameRU, profile sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.AuthorID, &d.TextKA, &textRU, &sourceKA, &sourceRU, &quoteDate,
			&d.AuthorNameKA, &nameRU, &d.AuthorAvatarPath, &profile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote %s: %w", id, err)
	}

	d.TextRU = dbx.StringPtr(textRU)
	d.SourceKA = dbx.StringPtr(sourceKA)
	d.SourceRU = dbx.StringPtr(sourceRU)
	d.QuoteDate = dbx.StringPtr(quoteDate)
	d.AuthorNameRU = dbx.StringPtr(nameRU)
	d.AuthorProfilePath = dbx.StringPtr(profile)
	return &d, nil
}

func (r *SQLiteRepository) GetByAuthor(ctx context.Context, authorID string, limit int) ([]models.Quote, error) {
	query := `
		SELECT id, author_id, text_ka, text_ru, source_ka, source_ru, quote_date, created_at, updated_at
		FROM quotes
		WHERE author_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select quotes for author %s: %w", authorID, err)
	}
	defer rows.Close()

	var result []models.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanQuote(rows *sql.Rows) (*models.Quote, error) {
	var q models.Quote
	var textRU, sourceKA, sourceRU, quoteDate sql.NullString
	var createdAt, updatedAt string
	if err := rows.Scan(&q.ID, &q.AuthorID, &q.TextKA, &textRU, &sourceKA, &sourceRU,
		&quoteDate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	q.TextRU = dbx.StringPtr(textRU)
	q.SourceKA = dbx.StringPtr(sourceKA)
	q.SourceRU = dbx.StringPtr(sourceRU)
	q.QuoteDate = dbx.StringPtr(quoteDate)

	var err error
	if q.CreatedAt, err = timex.Parse(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse quote %s created_at: %w", q.ID, err)
	}
	if q.UpdatedAt, err = timex.Parse(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse quote %s updated_at: %w", q.ID, err)
	}
	return &q, nil
}

func (r *SQLiteRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes WHERE author_id = ?`, authorID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count quotes for author %s: %w", authorID, err)
	}
	return n, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, q *models.Quote) error {
	query := `
		INSERT INTO quotes (id, author_id, text_ka, text_ru, source_ka, source_ru, quote_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			author_id = excluded.author_id,
			text_ka = excluded.text_ka,
			text_ru = excluded.text_ru,
			source_ka = excluded.source_ka,
			source_ru = excluded.source_ru,
			quote_date = excluded.quote_date,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.AuthorID, q.TextKA, dbx.NullString(q.TextRU), dbx.NullString(q.SourceKA),
		dbx.NullString(q.SourceRU), dbx.NullString(q.QuoteDate),
		timex.Format(q.CreatedAt), timex.Format(q.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert quote: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	return nil
}
