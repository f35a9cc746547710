package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/repository"
)

// UploadService, task eklerini diske kaydeder.
//
// Dosyalar uploadDir altında rastgele isimle durur — client'ın verdiği
// dosya adı path'e asla girmez (path traversal önlemi), sadece uzantı
// korunur.
type UploadService interface {
	SaveTaskAttachment(ctx context.Context, taskID, userID, email, filename string, src io.Reader, size int64) (*models.Task, error)
}

type uploadService struct {
	taskRepo         repository.TaskRepository
	workspaceService WorkspaceService
	uploadDir        string
	maxSize          int64
}

// NewUploadService, constructor. uploadDir yoksa oluşturulur.
func NewUploadService(taskRepo repository.TaskRepository, workspaceService WorkspaceService, uploadDir string, maxSize int64) (UploadService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &uploadService{
		taskRepo:         taskRepo,
		workspaceService: workspaceService,
		uploadDir:        uploadDir,
		maxSize:          maxSize,
	}, nil
}

func (s *uploadService) SaveTaskAttachment(ctx context.Context, taskID, userID, email, filename string, src io.Reader, size int64) (*models.Task, error) {
	if size > s.maxSize {
		return nil, fmt.Errorf("%w: file exceeds maximum size", pkg.ErrBadRequest)
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	// Kişisel görevin ekine yalnız sahibi dokunabilir
	if task.WorkspaceID == "" {
		if task.CreatedBy != userID {
			return nil, fmt.Errorf("%w: not your task", pkg.ErrForbidden)
		}
	} else {
		member, err := s.workspaceService.IsMember(ctx, task.WorkspaceID, email)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, fmt.Errorf("%w: not a member of this workspace", pkg.ErrForbidden)
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	storedName := uuid.NewString() + ext
	dstPath := filepath.Join(s.uploadDir, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer dst.Close()

	// LimitReader: Content-Length yalan söylese bile diskten fazlası geçmez
	written, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to write attachment: %w", err)
	}
	if written > s.maxSize {
		os.Remove(dstPath)
		return nil, fmt.Errorf("%w: file exceeds maximum size", pkg.ErrBadRequest)
	}

	// Eski ek varsa yenisiyle değiştirilir — dosyası diskten silinir
	if task.AttachmentPath != "" {
		os.Remove(filepath.Join(s.uploadDir, filepath.Base(task.AttachmentPath)))
	}

	if err := s.taskRepo.SetAttachment(ctx, taskID, storedName); err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	task.AttachmentPath = storedName
	return task, nil
}
