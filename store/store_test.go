package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesSchemaAndSeeds(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"sync_state", "settings", "authors", "quotes", "favorites", "feedback_outbox"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}

	var completed int
	require.NoError(t, s.DB().QueryRow(`SELECT initial_sync_completed FROM sync_state WHERE id=1`).Scan(&completed))
	assert.Equal(t, 0, completed)

	var lang, weekday string
	require.NoError(t, s.DB().QueryRow(`SELECT language, weekday_time FROM settings WHERE id=1`).Scan(&lang, &weekday))
	assert.Equal(t, "ka", lang)
	assert.Equal(t, "10:00", weekday)
}

func TestOpen_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quotes.db")

	s1, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s1.DB().Exec(`INSERT INTO authors(id, name_ka, avatar_path, updated_at) VALUES ('a1', 'n', 'p', 't')`)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// reopening must not re-run migrations destructively
	s2, err := Open(ctx, path)
	require.NoError(t, err)
	defer s2.Close()

	var n int
	require.NoError(t, s2.DB().QueryRow(`SELECT COUNT(*) FROM authors`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestWipe_ResetsEverything(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	seed := []string{
		`INSERT INTO authors(id, name_ka, avatar_path, updated_at) VALUES ('a1', 'n', 'p', 't')`,
		`INSERT INTO quotes(id, author_id, text_ka, created_at, updated_at) VALUES ('q1', 'a1', 'x', 't', 't')`,
		`INSERT INTO favorites(quote_id, added_at) VALUES ('q1', 't')`,
		`INSERT INTO feedback_outbox(id, message, language, created_at, status) VALUES ('o1', 'm', 'ka', 't', 'pending')`,
		`UPDATE sync_state SET initial_sync_completed = 1, last_sync_at = '2026-01-01T00:00:00Z' WHERE id = 1`,
		`UPDATE settings SET language = 'ru' WHERE id = 1`,
	}
	for _, q := range seed {
		_, err := s.DB().Exec(q)
		require.NoError(t, err)
	}

	require.NoError(t, s.Wipe(ctx))

	for _, table := range []string{"authors", "quotes", "favorites", "feedback_outbox"} {
		var n int
		require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "%s must be empty after wipe", table)
	}

	var completed int
	var lastSync any
	require.NoError(t, s.DB().QueryRow(`SELECT initial_sync_completed, last_sync_at FROM sync_state WHERE id=1`).Scan(&completed, &lastSync))
	assert.Equal(t, 0, completed)
	assert.Nil(t, lastSync)

	var lang string
	require.NoError(t, s.DB().QueryRow(`SELECT language FROM settings WHERE id=1`).Scan(&lang))
	assert.Equal(t, "ka", lang)
}
