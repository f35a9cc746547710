package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/repository"
	"github.com/dayzzy/tasky/ws"
)

// TaskService, görev yönetimi business logic'i.
//
// İki tür görev vardır: workspace görevleri (üyelik gerektirir, üyelik
// kontrolü middleware + service'te) ve kişisel görevler (WorkspaceID
// boş, sadece oluşturan erişebilir).
type TaskService interface {
	Create(ctx context.Context, userID, email string, req *models.CreateTaskRequest) (*models.Task, error)
	Get(ctx context.Context, taskID, userID, email string) (*models.Task, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Task, error)
	ListPersonal(ctx context.Context, userID string) ([]models.Task, error)
	Update(ctx context.Context, taskID, userID, email string, req *models.UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, taskID, userID, email string) error
}

type taskService struct {
	taskRepo         repository.TaskRepository
	columnRepo       repository.ColumnRepository
	workspaceService WorkspaceService
	hub              ws.EventPublisher
}

// NewTaskService, constructor.
func NewTaskService(
	taskRepo repository.TaskRepository,
	columnRepo repository.ColumnRepository,
	workspaceService WorkspaceService,
	hub ws.EventPublisher,
) TaskService {
	return &taskService{
		taskRepo:         taskRepo,
		columnRepo:       columnRepo,
		workspaceService: workspaceService,
		hub:              hub,
	}
}

func (s *taskService) Create(ctx context.Context, userID, email string, req *models.CreateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Kişisel görevde (boş workspace) üyelik kontrolü yoktur
	if req.WorkspaceID != "" {
		member, err := s.workspaceService.IsMember(ctx, req.WorkspaceID, email)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, fmt.Errorf("%w: not a member of this workspace", pkg.ErrForbidden)
		}
	}

	task := &models.Task{
		ID:            uuid.NewString(),
		WorkspaceID:   req.WorkspaceID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        models.TaskStatusPending,
		Priority:      req.Priority,
		AssigneeEmail: req.AssigneeEmail,
		DueAt:         req.DueAt,
		CreatedBy:     userID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.broadcast(ctx, task.WorkspaceID, email, ws.Event{Op: ws.OpTaskCreate, Data: task})
	return task, nil
}

func (s *taskService) Get(ctx context.Context, taskID, userID, email string) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, task, userID, email); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Task, error) {
	return s.taskRepo.ListByWorkspace(ctx, workspaceID)
}

func (s *taskService) ListPersonal(ctx context.Context, userID string) ([]models.Task, error) {
	return s.taskRepo.ListPersonal(ctx, userID)
}

// Update, task alanlarını kısmi günceller.
// Status bir column ID'ye set ediliyorsa column'un aynı workspace'te
// olduğu doğrulanır — başka panonun sütununa taşıma engellenir.
func (s *taskService) Update(ctx context.Context, taskID, userID, email string, req *models.UpdateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, task, userID, email); err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssigneeEmail != nil {
		task.AssigneeEmail = *req.AssigneeEmail
	}
	if req.DueAt != nil {
		task.DueAt = req.DueAt
	}
	if req.Status != nil {
		if err := s.validateStatus(ctx, task.WorkspaceID, *req.Status); err != nil {
			return nil, err
		}
		task.Status = *req.Status
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.broadcast(ctx, task.WorkspaceID, email, ws.Event{Op: ws.OpTaskUpdate, Data: task})
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, taskID, userID, email string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.requireAccess(ctx, task, userID, email); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	s.broadcast(ctx, task.WorkspaceID, email, ws.Event{
		Op:   ws.OpTaskDelete,
		Data: map[string]string{"task_id": taskID, "workspace_id": task.WorkspaceID},
	})
	return nil
}

// ─── Private Helpers ───

// requireAccess, task'a erişim iznini doğrular.
// Kişisel görevde yalnız oluşturan, workspace görevinde üyeler geçer.
func (s *taskService) requireAccess(ctx context.Context, task *models.Task, userID, email string) error {
	if task.WorkspaceID == "" {
		if task.CreatedBy != userID {
			return fmt.Errorf("%w: not your task", pkg.ErrForbidden)
		}
		return nil
	}

	member, err := s.workspaceService.IsMember(ctx, task.WorkspaceID, email)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("%w: not a member of this workspace", pkg.ErrForbidden)
	}
	return nil
}

// validateStatus, status'un sabit bir durum veya aynı workspace'in
// column ID'si olduğunu doğrular.
func (s *taskService) validateStatus(ctx context.Context, workspaceID, status string) error {
	if status == models.TaskStatusPending || status == models.TaskStatusCompleted {
		return nil
	}

	col, err := s.columnRepo.GetByID(ctx, status)
	if err != nil {
		return fmt.Errorf("%w: unknown task status %q", pkg.ErrBadRequest, status)
	}
	if col.WorkspaceID != workspaceID {
		return fmt.Errorf("%w: column belongs to another workspace", pkg.ErrBadRequest)
	}
	return nil
}

// broadcast, workspace görevini üyelere, kişisel görevi yalnız sahibinin
// kendi bağlantılarına (diğer tab'lar) yayınlar.
func (s *taskService) broadcast(ctx context.Context, workspaceID, ownerEmail string, event ws.Event) {
	if workspaceID == "" {
		s.hub.BroadcastToEmail(ownerEmail, event)
		return
	}

	emails, err := s.workspaceService.MemberEmails(ctx, workspaceID)
	if err != nil {
		return
	}
	s.hub.BroadcastToEmails(emails, event)
}
