package repository

import (
	"context"

	"github.com/dayzzy/tasky/models"
)

// SessionRepository, refresh token oturumları için interface.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
