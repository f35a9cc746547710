package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/repository"
	"github.com/dayzzy/tasky/ws"
)

// FocusService, odak (pomodoro) seanslarını yönetir.
//
// Sayaç client'ta çalışır; server üç şey yapar:
// - seans başlarken kullanıcı durumunu "focusing" yapıp yayınlar
// - seans bitince kaydeder ve durumu "online"a döndürür
// - istatistik üretir
type FocusService interface {
	Start(ctx context.Context, userID, email string) error
	Stop(ctx context.Context, userID, email string, req *models.RecordFocusRequest) (*models.FocusSession, error)
	History(ctx context.Context, userID string, limit int) ([]models.FocusSession, error)
	Stats(ctx context.Context, userID string) (*models.FocusStats, error)
}

type focusService struct {
	focusRepo repository.FocusRepository
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	hub       ws.EventPublisher
}

// NewFocusService, constructor.
func NewFocusService(
	focusRepo repository.FocusRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	hub ws.EventPublisher,
) FocusService {
	return &focusService{
		focusRepo: focusRepo,
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		hub:       hub,
	}
}

// Start, kullanıcıyı "focusing" durumuna alır ve herkese yayınlar.
// Diğer kullanıcılar odaklanan kişiyi rahatsız etmemeyi bilir.
func (s *focusService) Start(ctx context.Context, userID, email string) error {
	if err := s.userRepo.UpdateStatus(ctx, userID, models.StatusFocusing); err != nil {
		return err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpPresence,
		Data: ws.PresenceData{Email: email, Status: models.StatusFocusing},
	})
	return nil
}

// Stop, tamamlanan seansı kaydeder ve durumu "online"a döndürür.
func (s *focusService) Stop(ctx context.Context, userID, email string, req *models.RecordFocusRequest) (*models.FocusSession, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Seans bir göreve bağlanıyorsa görev var olmalı
	if req.TaskID != "" {
		if _, err := s.taskRepo.GetByID(ctx, req.TaskID); err != nil {
			return nil, fmt.Errorf("%w: task not found", pkg.ErrBadRequest)
		}
	}

	session := &models.FocusSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		TaskID:          req.TaskID,
		DurationSeconds: req.DurationSeconds,
		StartedAt:       req.StartedAt.UTC(),
		EndedAt:         req.StartedAt.UTC().Add(time.Duration(req.DurationSeconds) * time.Second),
	}
	if err := s.focusRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, models.StatusOnline); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpPresence,
		Data: ws.PresenceData{Email: email, Status: models.StatusOnline},
	})
	return session, nil
}

func (s *focusService) History(ctx context.Context, userID string, limit int) ([]models.FocusSession, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.focusRepo.ListByUser(ctx, userID, limit)
}

// Stats, toplam ve bugünkü istatistikleri döner.
// "Bugün" server'ın yerel gün başlangıcıdır.
func (s *focusService) Stats(ctx context.Context, userID string) (*models.FocusStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.focusRepo.Stats(ctx, userID, dayStart)
}
