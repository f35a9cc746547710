package repository

import (
	"context"
	"time"

	"github.com/dayzzy/tasky/models"
)

// FocusRepository, odak seansı veritabanı işlemleri için interface.
type FocusRepository interface {
	Create(ctx context.Context, session *models.FocusSession) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.FocusSession, error)
	Stats(ctx context.Context, userID string, dayStart time.Time) (*models.FocusStats, error)
}
