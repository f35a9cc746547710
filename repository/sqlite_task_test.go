package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayzzy/tasky/database"
	"github.com/dayzzy/tasky/models"
)

func seedWorkspace(t *testing.T, db *database.DB, id, ownerID string) {
	t.Helper()
	wsRepo := NewSQLiteWorkspaceRepo(db.Conn)
	require.NoError(t, wsRepo.Create(context.Background(), &models.Workspace{
		ID: id, Name: "Test", OwnerID: ownerID,
	}))
}

// Kişisel görev (boş workspace) NULL olarak yazılır ve boş string olarak
// geri okunur — workspaces FK'sı devrede kalır.
func TestTaskPersonalRoundTrip(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "ali@x.com")
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	task := &models.Task{
		ID: "t1", Title: "çiçekleri sula", Status: models.TaskStatusPending,
		Priority: models.PriorityMedium, CreatedBy: "u1",
	}
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, got.WorkspaceID)
	assert.Equal(t, "u1", got.CreatedBy)
}

func TestTaskListPersonal(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "ali@x.com")
	seedUser(t, db, "u2", "veli@x.com")
	seedWorkspace(t, db, "ws-1", "u1")
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Task{
		ID: "t1", Title: "kişisel", Status: models.TaskStatusPending,
		Priority: models.PriorityMedium, CreatedBy: "u1",
	}))
	// Workspace görevi kişisel listeye girmez
	require.NoError(t, repo.Create(ctx, &models.Task{
		ID: "t2", WorkspaceID: "ws-1", Title: "ortak", Status: models.TaskStatusPending,
		Priority: models.PriorityMedium, CreatedBy: "u1",
	}))
	// Başkasının kişisel görevi de girmez
	require.NoError(t, repo.Create(ctx, &models.Task{
		ID: "t3", Title: "onun", Status: models.TaskStatusPending,
		Priority: models.PriorityMedium, CreatedBy: "u2",
	}))

	tasks, err := repo.ListPersonal(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)

	// Workspace listesi de kişisel görevleri karıştırmaz
	wsTasks, err := repo.ListByWorkspace(ctx, "ws-1")
	require.NoError(t, err)
	require.Len(t, wsTasks, 1)
	assert.Equal(t, "t2", wsTasks[0].ID)
}
