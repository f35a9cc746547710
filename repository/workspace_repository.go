package repository

import (
	"context"

	"github.com/dayzzy/tasky/models"
)

// WorkspaceRepository, workspace ve üyelik veritabanı işlemleri için interface.
//
// Üyelik email ile tutulur — IsMember ve ListByMemberEmail normalize
// (lowercase) email bekler.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *models.Workspace) error
	GetByID(ctx context.Context, id string) (*models.Workspace, error)
	ListByMemberEmail(ctx context.Context, email string) ([]models.Workspace, error)
	Update(ctx context.Context, ws *models.Workspace) error
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, workspaceID, email, invitedBy string) error
	RemoveMember(ctx context.Context, workspaceID, email string) error
	ListMembers(ctx context.Context, workspaceID string) ([]models.WorkspaceMember, error)
	ListMemberEmails(ctx context.Context, workspaceID string) ([]string, error)
	IsMember(ctx context.Context, workspaceID, email string) (bool, error)
}
