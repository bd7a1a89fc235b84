package favorites

import (
	"context"

	"github.com/dchitadze/fathersquotes/models"
)

// Repository describes the local-only favorite bookmarks. Favorites never
// propagate upstream; sync only removes them when the referenced quote stops
// qualifying for local visibility.
type Repository interface {
	// IsFavorite reports whether the quote id is bookmarked.
	IsFavorite(ctx context.Context, quoteID string) (bool, error)

	// Add bookmarks a quote. Re-adding an already-favorited id is not an
	// error and does not duplicate; it refreshes the added-at time.
	Add(ctx context.Context, quoteID string) error

	// Remove drops a bookmark. Removing an absent id is a no-op.
	Remove(ctx context.Context, quoteID string) error

	// Toggle flips membership and returns the new state.
	Toggle(ctx context.Context, quoteID string) (bool, error)

	// IDs returns every favorited quote id as a fast-lookup set.
	IDs(ctx context.Context) (map[string]struct{}, error)

	// ListQuotes returns at most limit favorited quotes joined with author
	// display fields, newest-favorited first. Dangling bookmarks (quote
	// removed mid-cascade) are silently filtered by the join.
	ListQuotes(ctx context.Context, limit int) ([]models.FavoriteQuote, error)
}
