package authors

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dchitadze/fathersquotes/models"
	"github.com/dchitadze/fathersquotes/store"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s.DB()
}

func strp(s string) *string { return &s }
func intp(v int64) *int64   { return &v }

func TestUpsert_InsertAndOverwrite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := &models.Author{
		ID:         "a1",
		NameKA:     "ავტორი",
		NameRU:     strp("Автор"),
		AvatarPath: "/img/avatar_a1.jpg",
		SortOrder:  intp(3),
		UpdatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.Upsert(ctx, a))

	// overwrite by the same id
	a.NameKA = "ახალი სახელი"
	a.SortOrder = nil
	require.NoError(t, r.Upsert(ctx, a))

	got, err := r.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ახალი სახელი", got.NameKA)
	assert.Nil(t, got.SortOrder)
	assert.Equal(t, "Автор", *got.NameRU)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM authors`).Scan(&n))
	assert.Equal(t, 1, n, "upsert must not duplicate rows")
}

func TestGetByID_AbsentReturnsNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetAll_OrdersNullsLastThenByName(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Now()
	seed := []*models.Author{
		{ID: "a1", NameKA: "Author One", AvatarPath: "p", SortOrder: nil, UpdatedAt: now},
		{ID: "a2", NameKA: "Author Two", AvatarPath: "p", SortOrder: intp(1), UpdatedAt: now},
		{ID: "a3", NameKA: "ბ-author", AvatarPath: "p", SortOrder: nil, UpdatedAt: now},
		{ID: "a4", NameKA: "Author Four", AvatarPath: "p", SortOrder: intp(2), UpdatedAt: now},
	}
	for _, a := range seed {
		require.NoError(t, r.Upsert(ctx, a))
	}

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)

	ids := make([]string, 0, len(got))
	for _, item := range got {
		ids = append(ids, item.ID)
	}
	// explicit order first (1, 2), then null-order authors by name_ka
	assert.Equal(t, []string{"a2", "a4", "a1", "a3"}, ids)
}

func TestDeleteByID_IsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Author{ID: "a1", NameKA: "n", AvatarPath: "p", UpdatedAt: time.Now()}))
	require.NoError(t, r.DeleteByID(ctx, "a1"))
	require.NoError(t, r.DeleteByID(ctx, "a1"))

	got, err := r.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
