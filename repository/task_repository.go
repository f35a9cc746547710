package repository

import (
	"context"

	"github.com/dayzzy/tasky/models"
)

// TaskRepository, görev veritabanı işlemleri için interface.
//
// Boş WorkspaceID kişisel görevdir ve DB'de NULL saklanır — çeviri
// (boş string ↔ NULL) bu katmanda yapılır, service boş string görür.
//
// ResetStatusForColumn: bir kanban column'u silindiğinde o column'daki
// task'ları "pending" durumuna geri çeker — görevler kaybolmaz.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Task, error)
	ListPersonal(ctx context.Context, userID string) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	SetAttachment(ctx context.Context, id, path string) error
	ResetStatusForColumn(ctx context.Context, columnID string) (int64, error)
}
