// Package fathersquotes is the offline-first core of a bilingual quotes
// reader: a local SQLite mirror of the remote authors/quotes dataset with
// bulk and incremental synchronization, local favorites, a durable feedback
// outbox, and user settings. UI screens consume this package; it has no CLI.
package fathersquotes

import (
	"context"
	"fmt"

	"github.com/dchitadze/fathersquotes/config"
	"github.com/dchitadze/fathersquotes/events"
	"github.com/dchitadze/fathersquotes/feedback"
	"github.com/dchitadze/fathersquotes/logging"
	"github.com/dchitadze/fathersquotes/remote"
	"github.com/dchitadze/fathersquotes/repositories/authors"
	"github.com/dchitadze/fathersquotes/repositories/favorites"
	"github.com/dchitadze/fathersquotes/repositories/outbox"
	"github.com/dchitadze/fathersquotes/repositories/quotes"
	"github.com/dchitadze/fathersquotes/repositories/settings"
	"github.com/dchitadze/fathersquotes/repositories/syncstate"
	"github.com/dchitadze/fathersquotes/store"
	"github.com/dchitadze/fathersquotes/syncer"
)

// Core wires the local store, repositories, sync, and feedback services.
// Construct it once at startup with Open and pass it by reference; there is
// no global handle.
type Core struct {
	Store     *store.Store
	Bus       *events.Bus
	Authors   authors.Repository
	Quotes    quotes.Repository
	Favorites favorites.Repository
	Outbox    outbox.Repository
	Settings  settings.Repository
	SyncState syncstate.Repository
	Syncer    *syncer.Syncer
	Feedback  *feedback.Service

	log logging.Logger
}

// Open builds the core: opens (and migrates) the local store, constructs the
// remote client and asset fetcher from cfg, and wires every repository and
// service. A store failure is fatal and surfaces to the caller. A nil log
// defaults to a no-op logger.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*Core, error) {
	if log == nil {
		log = logging.Nop()
	}

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	bus := events.NewBus()
	provider := remote.NewRESTClient(cfg.RemoteBaseURL, cfg.RemoteAPIKey, cfg.HTTPTimeout)
	assets := remote.NewFileFetcher(cfg.AssetDir, cfg.HTTPTimeout)
	probe := remote.NewProbe(cfg.RemoteBaseURL, 0)

	ob := outbox.NewSQLiteRepository(st.DB(), bus)

	return &Core{
		Store:     st,
		Bus:       bus,
		Authors:   authors.NewSQLiteRepository(st.DB()),
		Quotes:    quotes.NewSQLiteRepository(st.DB()),
		Favorites: favorites.NewSQLiteRepository(st.DB(), bus),
		Outbox:    ob,
		Settings:  settings.NewSQLiteRepository(st.DB(), bus),
		SyncState: syncstate.NewSQLiteRepository(st.DB()),
		Syncer:    syncer.New(st, provider, assets, bus, log),
		Feedback:  feedback.New(ob, provider, probe, cfg.Platform, cfg.AppVersion, log),
		log:       log,
	}, nil
}

// NeedsInitialSync reports whether the app must show the sync-required
// screen instead of the main content.
func (c *Core) NeedsInitialSync(ctx context.Context) (bool, error) {
	completed, err := c.SyncState.InitialSyncCompleted(ctx)
	if err != nil {
		return false, err
	}
	return !completed, nil
}

// Refresh is the user-triggered sync entry point: an incremental pass when a
// checkpoint exists, otherwise the full bulk sync.
func (c *Core) Refresh(ctx context.Context) error {
	ran, err := c.Syncer.Incremental(ctx)
	if err != nil {
		return err
	}
	if ran {
		return nil
	}
	return c.Syncer.Initial(ctx)
}

// Close releases the local store.
func (c *Core) Close() error {
	return c.Store.Close()
}
