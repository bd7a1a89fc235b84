package authors

import (
	"context"

	"github.com/dchitadze/fathersquotes/models"
)

// Repository describes read and sync-write operations for Author rows.
// Implementations are backed by the local SQLite database; the reading UI
// never mutates authors, only sync does.
type Repository interface {
	// GetAll lists every author ordered for display: explicit sort order
	// ascending with nulls last, ties broken by primary-language name.
	GetAll(ctx context.Context) ([]models.AuthorListItem, error)

	// GetByID returns the full author row, or nil (not an error) when the
	// id is unknown.
	GetByID(ctx context.Context, id string) (*models.Author, error)

	// Upsert inserts or overwrites an author by id. Sync-only.
	Upsert(ctx context.Context, a *models.Author) error

	// DeleteByID removes an author. Deleting an absent id is a no-op.
	DeleteByID(ctx context.Context, id string) error
}
