// Package models defines the row and view types held in the local store,
// plus the bilingual display helper shared by all read paths.
package models

import "time"

// Language is the reader's active content language.
type Language string

const (
	LanguageKA Language = "ka"
	LanguageRU Language = "ru"
)

// Author mirrors a remote "father" row. Image fields hold local file paths
// once sync has materialized the remote assets; on download failure they
// fall back to the raw remote URL.
type Author struct {
	ID          string
	NameKA      string
	NameRU      *string
	BioKA       *string
	BioRU       *string
	AvatarPath  string
	ProfilePath *string
	SortOrder   *int64
	UpdatedAt   time.Time
}

// AuthorListItem is the projection used by the authors list screen.
type AuthorListItem struct {
	ID         string
	NameKA     string
	NameRU     *string
	AvatarPath string
	SortOrder  *int64
}

// Quote mirrors a remote quote row. Only published, non-deleted quotes are
// ever present locally; the sync layer enforces that.
type Quote struct {
	ID        string
	AuthorID  string
	TextKA    string
	TextRU    *string
	SourceKA  *string
	SourceRU  *string
	QuoteDate *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LatestQuote is a quote joined with its author's display fields, for the
// latest-quotes feed.
type LatestQuote struct {
	ID               string
	AuthorID         string
	TextKA           string
	TextRU           *string
	CreatedAt        time.Time
	AuthorNameKA     string
	AuthorNameRU     *string
	AuthorAvatarPath string
}

// QuoteDetails is a single quote joined with the full author display and
// image fields, for the detail screen.
type QuoteDetails struct {
	ID                string
	AuthorID          string
	TextKA            string
	TextRU            *string
	SourceKA          *string
	SourceRU          *string
	QuoteDate         *string
	AuthorNameKA      string
	AuthorNameRU      *string
	AuthorAvatarPath  string
	AuthorProfilePath *string
}

// FavoriteQuote is a favorited quote joined with author display fields,
// ordered by the time it was favorited.
type FavoriteQuote struct {
	ID               string
	AuthorID         string
	TextKA           string
	TextRU           *string
	CreatedAt        time.Time
	AddedAt          time.Time
	AuthorNameKA     string
	AuthorNameRU     *string
	AuthorAvatarPath string
}

// Outbox entry statuses.
const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// OutboxEntry is a queued feedback submission awaiting delivery.
type OutboxEntry struct {
	ID        string
	Message   string
	Contact   *string
	Language  Language
	CreatedAt time.Time
	Status    string
	LastError *string
}

// Settings is the singleton user-preferences row.
type Settings struct {
	Language             Language
	NotificationsEnabled bool
	WeekdayTime          string
	WeekendTime          string
	SoundID              string
	UpdatedAt            *time.Time
}

// DisplayText picks the text to render for the active language: the
// secondary-language variant when the reader uses the secondary language and
// the variant is present and non-empty, otherwise the primary text.
func DisplayText(primary string, secondary *string, lang Language) string {
	if lang == LanguageRU && secondary != nil && *secondary != "" {
		return *secondary
	}
	return primary
}
