package authors

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

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.AuthorListItem, error) {
	query := `
		SELECT id, name_ka, name_ru, avatar_path, sort_order
		FROM authors
		ORDER BY
			CASE WHEN sort_order IS NULL THEN 1 ELSE 0 END,
			sort_order ASC,
			name_ka ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select authors: %w", err)
	}
	defer rows.Close()

	var result []models.AuthorListItem
	for rows.Next() {
		var item models.AuthorListItem
		var nameRU sql.NullString
		var order sql.NullInt64
		if err := rows.Scan(&item.ID, &item.NameKA, &nameRU, &item.AvatarPath, &order); err != nil {
			return nil, err
		}
		item.NameRU = dbx.StringPtr(nameRU)
		item.SortOrder = dbx.Int64Ptr(order)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	query := `
		SELECT id, name_ka, name_ru, bio_ka, bio_ru, avatar_path, profile_path, sort_order, updated_at
		FROM authors
		WHERE id = ?
		LIMIT 1
	`
	var a models.Author
	var nameRU, bioKA, bioRU, profile sql.NullString
	var order sql.NullInt64
	var updatedAt string
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.NameKA, &nameRU, &bioKA, &bioRU, &a.AvatarPath, &profile, &order, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author %s: %w", id, err)
	}

	a.NameRU = dbx.StringPtr(nameRU)
	a.BioKA = dbx.StringPtr(bioKA)
	a.BioRU = dbx.StringPtr(bioRU)
	a.ProfilePath = dbx.StringPtr(profile)
	a.SortOrder = dbx.Int64Ptr(order)
	if a.UpdatedAt, err = timex.Parse(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse author %s updated_at: %w", id, err)
	}
	return &a, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, a *models.Author) error {
	query := `
		INSERT INTO authors (id, name_ka, name_ru, bio_ka, bio_ru, avatar_path, profile_path, sort_order, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name_ka = excluded.name_ka,
			name_ru = excluded.name_ru,
			bio_ka = excluded.bio_ka,
			bio_ru = excluded.bio_ru,
			avatar_path = excluded.avatar_path,
			profile_path = excluded.profile_path,
			sort_order = excluded.sort_order,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.NameKA, dbx.NullString(a.NameRU), dbx.NullString(a.BioKA), dbx.NullString(a.BioRU),
		a.AvatarPath, dbx.NullString(a.ProfilePath), dbx.NullInt64(a.SortOrder), timex.Format(a.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert author: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return nil
}
