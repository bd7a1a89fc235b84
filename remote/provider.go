// Package remote implements the client side of the hosted data provider: the
// table API the sync layer mirrors from, asset downloads, and a reachability
// probe. The core consumes these capabilities; it never implements them
// server-side.
package remote

import (
	"context"
	"time"
)

// Author is the remote "fathers" row shape.
type Author struct {
	ID              string    `json:"id"`
	NameKA          string    `json:"name_ka"`
	NameRU          *string   `json:"name_ru"`
	BioKA           *string   `json:"bio_ka"`
	BioRU           *string   `json:"bio_ru"`
	AvatarURL       string    `json:"avatar_url"`
	ProfileImageURL *string   `json:"profile_image_url"`
	SortOrder       *int64    `json:"order"`
	Deleted         bool      `json:"deleted"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Quote is the remote "quotes" row shape.
type Quote struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"father_id"`
	TextKA      string    `json:"text_ka"`
	TextRU      *string   `json:"text_ru"`
	SourceKA    *string   `json:"source_ka"`
	SourceRU    *string   `json:"source_ru"`
	QuoteDate   *string   `json:"quote_date"`
	IsPublished bool      `json:"is_published"`
	Deleted     bool      `json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Feedback is a user feedback submission.
type Feedback struct {
	Message    string  `json:"message"`
	Contact    *string `json:"contact"`
	Language   string  `json:"language"`
	Platform   string  `json:"platform"`
	AppVersion string  `json:"app_version"`
}

// Provider is the capability interface over the hosted table API.
type Provider interface {
	// ListAuthors returns every non-deleted author ordered by sort order.
	ListAuthors(ctx context.Context) ([]Author, error)

	// ListAuthorsChangedSince returns authors modified strictly after since,
	// including deleted ones (the caller applies the deletions).
	ListAuthorsChangedSince(ctx context.Context, since time.Time) ([]Author, error)

	// ListQuotes returns every published, non-deleted quote, newest first.
	ListQuotes(ctx context.Context) ([]Quote, error)

	// ListQuotesChangedSince returns quotes modified strictly after since,
	// including deleted and unpublished ones.
	ListQuotesChangedSince(ctx context.Context, since time.Time) ([]Quote, error)

	// SubmitFeedback delivers one feedback entry.
	SubmitFeedback(ctx context.Context, fb Feedback) error
}

// AssetFetcher materializes a remote image into a local file.
type AssetFetcher interface {
	// Download fetches url into a file named localName inside the asset
	// directory and returns the resulting path.
	Download(ctx context.Context, url, localName string) (string, error)
}

// Connectivity reports whether the remote endpoint is currently reachable.
type Connectivity interface {
	Online(ctx context.Context) bool
}
