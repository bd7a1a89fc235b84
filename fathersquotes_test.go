package fathersquotes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dchitadze/fathersquotes/config"
	"github.com/dchitadze/fathersquotes/events"
	"github.com/dchitadze/fathersquotes/models"
	"github.com/dchitadze/fathersquotes/remote"
)

// fakeBackend serves the table API and image assets the core syncs from.
func fakeBackend(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var feedbackCount atomic.Int32
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/fathers", func(w http.ResponseWriter, r *http.Request) {
		base := "http://" + r.Host
		_ = json.NewEncoder(w).Encode([]remote.Author{
			{ID: "a1", NameKA: "მამა გაბრიელი", AvatarURL: base + "/img/a1.jpg", UpdatedAt: now},
		})
	})
	mux.HandleFunc("/rest/v1/quotes", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]remote.Quote{
			{ID: "q1", AuthorID: "a1", TextKA: "სიყვარული", IsPublished: true, CreatedAt: now, UpdatedAt: now},
		})
	})
	mux.HandleFunc("/rest/v1/feedback", func(w http.ResponseWriter, r *http.Request) {
		feedbackCount.Add(1)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &feedbackCount
}

func openCore(t *testing.T) (*Core, *atomic.Int32) {
	t.Helper()
	srv, feedbackCount := fakeBackend(t)

	dir := t.TempDir()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.RemoteBaseURL = srv.URL
	cfg.RemoteAPIKey = "pk_test"
	cfg.DatabasePath = filepath.Join(dir, "quotes.db")
	cfg.AssetDir = filepath.Join(dir, "assets")

	core, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = core.Close() })
	return core, feedbackCount
}

func TestOpen_GatesOnInitialSync(t *testing.T) {
	core, _ := openCore(t)
	ctx := context.Background()

	needs, err := core.NeedsInitialSync(ctx)
	require.NoError(t, err)
	assert.True(t, needs, "fresh install requires the sync screen")

	require.NoError(t, core.Refresh(ctx))

	needs, err = core.NeedsInitialSync(ctx)
	require.NoError(t, err)
	assert.False(t, needs)

	latest, err := core.Quotes.GetLatest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "მამა გაბრიელი", latest[0].AuthorNameKA)
}

func TestRefresh_SecondCallRunsIncremental(t *testing.T) {
	core, _ := openCore(t)
	ctx := context.Background()

	require.NoError(t, core.Refresh(ctx))
	require.NoError(t, core.Refresh(ctx), "incremental refresh against an unchanged remote succeeds")

	latest, err := core.Quotes.GetLatest(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, latest, 1)
}

func TestFeedback_SubmitDeliversWhenOnline(t *testing.T) {
	core, feedbackCount := openCore(t)
	ctx := context.Background()

	require.NoError(t, core.Feedback.Submit(ctx, "გმადლობთ", nil, models.LanguageKA))
	assert.EqualValues(t, 1, feedbackCount.Load())
}

func TestBus_FavoriteToggleNotifies(t *testing.T) {
	core, _ := openCore(t)
	ctx := context.Background()
	require.NoError(t, core.Refresh(ctx))

	var notified []events.Entity
	cancel := core.Bus.Subscribe(func(e events.Entity) { notified = append(notified, e) })
	defer cancel()

	on, err := core.Favorites.Toggle(ctx, "q1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Contains(t, notified, events.Favorites)
}
