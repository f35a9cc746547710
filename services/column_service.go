package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/dayzzy/tasky/database"
	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/repository"
	"github.com/dayzzy/tasky/ws"
)

// ColumnService, kanban panosu sütunlarını yönetir.
type ColumnService interface {
	Create(ctx context.Context, email string, req *models.CreateColumnRequest) (*models.Column, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Column, error)
	Update(ctx context.Context, columnID, email string, req *models.UpdateColumnRequest) (*models.Column, error)
	Delete(ctx context.Context, columnID, email string) error
}

type columnService struct {
	db               *sql.DB
	columnRepo       repository.ColumnRepository
	taskRepo         repository.TaskRepository
	workspaceService WorkspaceService
	hub              ws.EventPublisher
}

// NewColumnService, constructor.
func NewColumnService(
	db *sql.DB,
	columnRepo repository.ColumnRepository,
	taskRepo repository.TaskRepository,
	workspaceService WorkspaceService,
	hub ws.EventPublisher,
) ColumnService {
	return &columnService{
		db:               db,
		columnRepo:       columnRepo,
		taskRepo:         taskRepo,
		workspaceService: workspaceService,
		hub:              hub,
	}
}

func (s *columnService) Create(ctx context.Context, email string, req *models.CreateColumnRequest) (*models.Column, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if err := s.requireMember(ctx, req.WorkspaceID, email); err != nil {
		return nil, err
	}

	col := &models.Column{
		ID:          uuid.NewString(),
		WorkspaceID: req.WorkspaceID,
		Title:       req.Title,
		Color:       req.Color,
	}
	if err := s.columnRepo.Create(ctx, col); err != nil {
		return nil, err
	}

	s.broadcast(ctx, col.WorkspaceID, ws.Event{Op: ws.OpColumnCreate, Data: col})
	return col, nil
}

func (s *columnService) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Column, error) {
	return s.columnRepo.ListByWorkspace(ctx, workspaceID)
}

func (s *columnService) Update(ctx context.Context, columnID, email string, req *models.UpdateColumnRequest) (*models.Column, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	col, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, col.WorkspaceID, email); err != nil {
		return nil, err
	}

	if req.Title != nil {
		col.Title = *req.Title
	}
	if req.Color != nil {
		col.Color = *req.Color
	}
	if req.Position != nil {
		col.Position = *req.Position
	}
	if err := s.columnRepo.Update(ctx, col); err != nil {
		return nil, err
	}

	s.broadcast(ctx, col.WorkspaceID, ws.Event{Op: ws.OpColumnUpdate, Data: col})
	return col, nil
}

// Delete, sütunu siler ve o sütundaki task'ları "pending"e geri çeker.
//
// İki adım tek transaction'dadır: sütun silinip task'lar serbest
// kalmazsa pano ile görev listesi tutarsız düşerdi. Task'lar asla
// sütunla birlikte silinmez — pano bir görünümdür, görevlerin sahibi değil.
func (s *columnService) Delete(ctx context.Context, columnID, email string) error {
	col, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, col.WorkspaceID, email); err != nil {
		return err
	}

	var released int64
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txTaskRepo := repository.NewSQLiteTaskRepo(tx)
		txColumnRepo := repository.NewSQLiteColumnRepo(tx)

		n, err := txTaskRepo.ResetStatusForColumn(ctx, columnID)
		if err != nil {
			return err
		}
		released = n

		return txColumnRepo.Delete(ctx, columnID)
	})
	if err != nil {
		return err
	}

	log.Printf("[column] deleted %s, released %d tasks to pending", columnID, released)

	s.broadcast(ctx, col.WorkspaceID, ws.Event{
		Op: ws.OpColumnDelete,
		Data: ws.ColumnDeleteData{
			ColumnID:      columnID,
			WorkspaceID:   col.WorkspaceID,
			TasksReleased: released,
		},
	})
	return nil
}

// ─── Private Helpers ───

func (s *columnService) requireMember(ctx context.Context, workspaceID, email string) error {
	member, err := s.workspaceService.IsMember(ctx, workspaceID, email)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("%w: not a member of this workspace", pkg.ErrForbidden)
	}
	return nil
}

func (s *columnService) broadcast(ctx context.Context, workspaceID string, event ws.Event) {
	emails, err := s.workspaceService.MemberEmails(ctx, workspaceID)
	if err != nil {
		return
	}
	s.hub.BroadcastToEmails(emails, event)
}
