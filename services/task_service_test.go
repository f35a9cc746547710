package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/ws"
)

func newTaskFixture() (TaskService, *fakeTaskRepo, *fakeWorkspaceService, *fakePublisher) {
	taskRepo := newFakeTaskRepo()
	workspaceSvc := newFakeWorkspaceService()
	hub := &fakePublisher{}
	svc := NewTaskService(taskRepo, newFakeColumnRepo(), workspaceSvc, hub)
	return svc, taskRepo, workspaceSvc, hub
}

// Workspace'siz görev kişiseldir: üyelik aranmaz, sadece sahibine yayınlanır.
func TestCreatePersonalTask(t *testing.T) {
	svc, _, _, hub := newTaskFixture()

	task, err := svc.Create(context.Background(), "u1", "ali@x.com", &models.CreateTaskRequest{
		Title: "çiçekleri sula",
	})
	require.NoError(t, err)

	assert.Empty(t, task.WorkspaceID)
	assert.Equal(t, "u1", task.CreatedBy)
	assert.Equal(t, models.TaskStatusPending, task.Status)

	events := hub.eventsByOp(ws.OpTaskCreate)
	require.Len(t, events, 1)
	assert.Equal(t, "ali@x.com", events[0].target)
}

func TestCreateWorkspaceTaskRequiresMembership(t *testing.T) {
	svc, _, workspaceSvc, _ := newTaskFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "ali@x.com", &models.CreateTaskRequest{
		WorkspaceID: "ws-1", Title: "rapor yaz",
	})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	workspaceSvc.addMember("ws-1", "ali@x.com")

	task, err := svc.Create(ctx, "u1", "ali@x.com", &models.CreateTaskRequest{
		WorkspaceID: "ws-1", Title: "rapor yaz",
	})
	require.NoError(t, err)
	assert.Equal(t, "ws-1", task.WorkspaceID)
}

// Kişisel görevi sahibinden başkası okuyamaz ve değiştiremez.
func TestPersonalTaskIsOwnerOnly(t *testing.T) {
	svc, _, _, _ := newTaskFixture()
	ctx := context.Background()

	task, err := svc.Create(ctx, "u1", "ali@x.com", &models.CreateTaskRequest{Title: "günlük"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, task.ID, "u2", "veli@x.com")
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	newTitle := "ele geçirildi"
	_, err = svc.Update(ctx, task.ID, "u2", "veli@x.com", &models.UpdateTaskRequest{Title: &newTitle})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	err = svc.Delete(ctx, task.ID, "u2", "veli@x.com")
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Sahibi için her şey çalışır
	got, err := svc.Get(ctx, task.ID, "u1", "ali@x.com")
	require.NoError(t, err)
	assert.Equal(t, "günlük", got.Title)
}

func TestListPersonalOnlyOwnTasks(t *testing.T) {
	svc, _, _, _ := newTaskFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "ali@x.com", &models.CreateTaskRequest{Title: "benim"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", "veli@x.com", &models.CreateTaskRequest{Title: "onun"})
	require.NoError(t, err)

	tasks, err := svc.ListPersonal(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "benim", tasks[0].Title)
}
