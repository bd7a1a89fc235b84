// Package syncer mirrors the remote dataset into the local store: a one-time
// bulk sync gated by the sync-state flag, then user-triggered incremental
// passes that apply only rows changed since the last checkpoint.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dchitadze/fathersquotes/dbx"
	"github.com/dchitadze/fathersquotes/events"
	"github.com/dchitadze/fathersquotes/logging"
	"github.com/dchitadze/fathersquotes/models"
	"github.com/dchitadze/fathersquotes/remote"
	"github.com/dchitadze/fathersquotes/repositories/authors"
	"github.com/dchitadze/fathersquotes/repositories/favorites"
	"github.com/dchitadze/fathersquotes/repositories/quotes"
	"github.com/dchitadze/fathersquotes/repositories/syncstate"
	"github.com/dchitadze/fathersquotes/store"
)

// Syncer coordinates bulk and incremental mirroring. A mutex serializes
// passes so two refresh triggers cannot interleave writes; reads stay
// unblocked throughout.
type Syncer struct {
	store   *store.Store
	remote  remote.Provider
	assets  remote.AssetFetcher
	authors authors.Repository
	quotes  quotes.Repository
	state   syncstate.Repository
	bus     *events.Bus
	log     logging.Logger

	mu sync.Mutex
}

// New builds a Syncer over the given store and remote capabilities.
// bus may be nil; a nil log defaults to a no-op logger.
func New(st *store.Store, provider remote.Provider, assets remote.AssetFetcher, bus *events.Bus, log logging.Logger) *Syncer {
	if log == nil {
		log = logging.Nop()
	}
	return &Syncer{
		store:   st,
		remote:  provider,
		assets:  assets,
		authors: authors.NewSQLiteRepository(st.DB()),
		quotes:  quotes.NewSQLiteRepository(st.DB()),
		state:   syncstate.NewSQLiteRepository(st.DB()),
		bus:     bus,
		log:     log.With("component", "syncer"),
	}
}

// Initial performs the first full mirror: every author with its images
// materialized locally, then every published quote. The completed flag is
// set only after the whole pass succeeds, so a fatal error leaves the
// operation retryable from scratch; re-runs are idempotent upserts.
func (s *Syncer) Initial(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// checkpoint candidate taken before the fetch so rows changing during
	// the pass fall inside the next incremental window
	started := time.Now()

	remoteAuthors, err := s.remote.ListAuthors(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch author list: %w", err)
	}

	for i := range remoteAuthors {
		if err := s.applyAuthor(ctx, &remoteAuthors[i]); err != nil {
			return err
		}
	}

	remoteQuotes, err := s.remote.ListQuotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch quote list: %w", err)
	}

	for i := range remoteQuotes {
		if err := s.quotes.Upsert(ctx, toQuoteModel(&remoteQuotes[i])); err != nil {
			return err
		}
	}

	if err := s.state.SetInitialSyncCompleted(ctx, true); err != nil {
		return err
	}
	// seed the incremental checkpoint; without it every refresh would fall
	// back to a full mirror
	if err := s.state.SetLastSyncAt(ctx, started); err != nil {
		return err
	}

	s.log.Info(ctx, "bulk sync complete",
		"authors", len(remoteAuthors), "quotes", len(remoteQuotes))
	s.bus.Publish(events.Authors)
	s.bus.Publish(events.Quotes)
	return nil
}

// Incremental applies rows changed strictly after the stored checkpoint.
// Without a checkpoint it reports (false, nil); the caller falls back to
// Initial. A fetch-level error aborts the pass and leaves the checkpoint
// unchanged, so the next attempt re-fetches the same window.
func (s *Syncer) Incremental(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.state.LastSyncAt(ctx)
	if err != nil {
		return false, err
	}
	if last == nil {
		return false, nil
	}

	var changedAuthors []remote.Author
	var changedQuotes []remote.Quote

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		changedAuthors, err = s.remote.ListAuthorsChangedSince(gctx, *last)
		return err
	})
	g.Go(func() error {
		var err error
		changedQuotes, err = s.remote.ListQuotesChangedSince(gctx, *last)
		return err
	})
	if err := g.Wait(); err != nil {
		return false, fmt.Errorf("failed to fetch changes since %s: %w", last.Format(time.RFC3339), err)
	}

	for i := range changedAuthors {
		a := &changedAuthors[i]
		if a.Deleted {
			// quotes of a deleted author stay until they report
			// deleted/unpublished themselves
			if err := s.authors.DeleteByID(ctx, a.ID); err != nil {
				return false, err
			}
			continue
		}
		if err := s.applyAuthor(ctx, a); err != nil {
			return false, err
		}
	}

	for i := range changedQuotes {
		q := &changedQuotes[i]
		if q.Deleted || !q.IsPublished {
			if err := s.removeQuoteWithFavorite(ctx, q.ID); err != nil {
				return false, err
			}
			continue
		}
		if err := s.quotes.Upsert(ctx, toQuoteModel(q)); err != nil {
			return false, err
		}
	}

	if err := s.state.SetLastSyncAt(ctx, time.Now()); err != nil {
		return false, err
	}

	s.log.Info(ctx, "incremental sync complete",
		"authors", len(changedAuthors), "quotes", len(changedQuotes))
	if len(changedAuthors) > 0 {
		s.bus.Publish(events.Authors)
	}
	if len(changedQuotes) > 0 {
		s.bus.Publish(events.Quotes)
		s.bus.Publish(events.Favorites)
	}
	return true, nil
}

// applyAuthor materializes the author's images and upserts the row. A single
// image download failure is recoverable: the raw remote URL is kept as the
// path so the UI still has something renderable, and the pass continues.
func (s *Syncer) applyAuthor(ctx context.Context, a *remote.Author) error {
	avatarPath, err := s.assets.Download(ctx, a.AvatarURL, "avatar_"+a.ID+".jpg")
	if err != nil {
		s.log.Warn(ctx, "avatar download failed, keeping remote url",
			"author", a.ID, "error", err)
		avatarPath = a.AvatarURL
	}

	var profilePath *string
	if a.ProfileImageURL != nil {
		p, err := s.assets.Download(ctx, *a.ProfileImageURL, "profile_"+a.ID+".jpg")
		if err != nil {
			s.log.Warn(ctx, "profile image download failed, keeping remote url",
				"author", a.ID, "error", err)
			p = *a.ProfileImageURL
		}
		profilePath = &p
	}

	return s.authors.Upsert(ctx, &models.Author{
		ID:          a.ID,
		NameKA:      a.NameKA,
		NameRU:      a.NameRU,
		BioKA:       a.BioKA,
		BioRU:       a.BioRU,
		AvatarPath:  avatarPath,
		ProfilePath: profilePath,
		SortOrder:   a.SortOrder,
		UpdatedAt:   a.UpdatedAt,
	})
}

// removeQuoteWithFavorite deletes a quote that lost local visibility together
// with any favorite referencing it, as one transaction.
func (s *Syncer) removeQuoteWithFavorite(ctx context.Context, quoteID string) error {
	return s.store.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := quotes.NewSQLiteRepository(tx).DeleteByID(ctx, quoteID); err != nil {
			return err
		}
		return favorites.NewSQLiteRepository(tx, nil).RemoveByQuoteID(ctx, quoteID)
	})
}

func toQuoteModel(q *remote.Quote) *models.Quote {
	return &models.Quote{
		ID:        q.ID,
		AuthorID:  q.AuthorID,
		TextKA:    q.TextKA,
		TextRU:    q.TextRU,
		SourceKA:  q.SourceKA,
		SourceRU:  q.SourceRU,
		QuoteDate: q.QuoteDate,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}
