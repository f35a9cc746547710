package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayzzy/tasky/models"
)

func TestColumnColorRoundTrip(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "ali@x.com")
	seedWorkspace(t, db, "ws-1", "u1")
	repo := NewSQLiteColumnRepo(db.Conn)
	ctx := context.Background()

	col := &models.Column{ID: "c1", WorkspaceID: "ws-1", Title: "Yapılacak", Color: "#ff0000"}
	require.NoError(t, repo.Create(ctx, col))
	assert.Equal(t, 0, col.Position)

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", got.Color)

	got.Color = "#00ff00"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", got.Color)
}

func TestColumnPositionsIncrement(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "ali@x.com")
	seedWorkspace(t, db, "ws-1", "u1")
	repo := NewSQLiteColumnRepo(db.Conn)
	ctx := context.Background()

	first := &models.Column{ID: "c1", WorkspaceID: "ws-1", Title: "Yapılacak", Color: "#ffeb3b"}
	second := &models.Column{ID: "c2", WorkspaceID: "ws-1", Title: "Sürüyor", Color: "#ffeb3b"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)

	columns, err := repo.ListByWorkspace(ctx, "ws-1")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "c1", columns[0].ID)
}
