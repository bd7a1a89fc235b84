package quotes

import (
	"context"

	"github.com/dchitadze/fathersquotes/models"
)

// Repository describes read and sync-write operations for Quote rows. Reads
// join author display fields so screens never issue a second lookup.
type Repository interface {
	// GetLatest returns at most limit quotes across all authors, newest
	// first, joined with the owning author's display fields.
	GetLatest(ctx context.Context, limit int) ([]models.LatestQuote, error)

	// GetByID returns a single quote joined with the full author display and
	// image fields, or nil (not an error) when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.QuoteDetails, error)

	// GetByAuthor returns at most limit quotes for one author, newest first.
	GetByAuthor(ctx context.Context, authorID string, limit int) ([]models.Quote, error)

	// CountByAuthor returns the number of locally mirrored quotes for an author.
	CountByAuthor(ctx context.Context, authorID string) (int64, error)

	// Upsert inserts or overwrites a quote by id. Sync-only.
	Upsert(ctx context.Context, q *models.Quote) error

	// DeleteByID removes a quote. Deleting an absent id is a no-op.
	DeleteByID(ctx context.Context, id string) error
}
