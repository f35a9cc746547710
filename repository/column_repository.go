package repository

import (
	"context"

	"github.com/dayzzy/tasky/models"
)

// ColumnRepository, kanban sütunu veritabanı işlemleri için interface.
type ColumnRepository interface {
	Create(ctx context.Context, col *models.Column) error
	GetByID(ctx context.Context, id string) (*models.Column, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Column, error)
	Update(ctx context.Context, col *models.Column) error
	Delete(ctx context.Context, id string) error
}
