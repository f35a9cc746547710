package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayzzy/tasky/database"
	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
)

func seedUser(t *testing.T, db *database.DB, id, email string) {
	t.Helper()
	userRepo := NewSQLiteUserRepo(db.Conn)
	require.NoError(t, userRepo.Create(context.Background(), &models.User{
		ID: id, Email: email, PasswordHash: "x", DisplayName: "Test", Status: models.StatusOffline,
	}))
}

func TestReadMarkerUpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "a@x.com")
	repo := NewSQLiteReadMarkerRepo(db.Conn)
	ctx := context.Background()

	readAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, "u1", "ws-1", readAt))

	marker, err := repo.Get(ctx, "u1", "ws-1")
	require.NoError(t, err)
	assert.True(t, marker.LastReadAt.Equal(readAt))
}

// İşaret monoton ilerler: geç gelen eski bir istek işareti geri saramaz.
func TestReadMarkerIsMonotonic(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "a@x.com")
	repo := NewSQLiteReadMarkerRepo(db.Conn)
	ctx := context.Background()

	newer := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	require.NoError(t, repo.Upsert(ctx, "u1", "ws-1", newer))
	require.NoError(t, repo.Upsert(ctx, "u1", "ws-1", older))

	marker, err := repo.Get(ctx, "u1", "ws-1")
	require.NoError(t, err)
	assert.True(t, marker.LastReadAt.Equal(newer), "marker regressed to %v", marker.LastReadAt)

	// Daha yeni zaman işareti ilerletir.
	newest := newer.Add(time.Minute)
	require.NoError(t, repo.Upsert(ctx, "u1", "ws-1", newest))

	marker, err = repo.Get(ctx, "u1", "ws-1")
	require.NoError(t, err)
	assert.True(t, marker.LastReadAt.Equal(newest))
}

func TestReadMarkerGetNotFound(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "a@x.com")
	repo := NewSQLiteReadMarkerRepo(db.Conn)

	_, err := repo.Get(context.Background(), "u1", "hic-yok")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestReadMarkerMapByUser(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "a@x.com")
	seedUser(t, db, "u2", "b@x.com")
	repo := NewSQLiteReadMarkerRepo(db.Conn)
	ctx := context.Background()

	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, "u1", "ws-1", t1))
	require.NoError(t, repo.Upsert(ctx, "u1", "a@x.com_b@x.com", t1.Add(time.Minute)))
	require.NoError(t, repo.Upsert(ctx, "u2", "ws-1", t1))

	markers, err := repo.MapByUser(ctx, "u1")
	require.NoError(t, err)

	assert.Len(t, markers, 2)
	assert.True(t, markers["ws-1"].Equal(t1))
	assert.True(t, markers["a@x.com_b@x.com"].Equal(t1.Add(time.Minute)))
}
