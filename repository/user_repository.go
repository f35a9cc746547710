package repository

import (
	"context"

	"github.com/dayzzy/tasky/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
//
// Neden interface? Service katmanı somut SQLite implementasyonunu değil
// bu interface'i görür — testlerde fake'lenebilir, ileride DB değişebilir.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmails(ctx context.Context, emails []string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id, displayName string) error
	UpdateStatus(ctx context.Context, id, status string) error
}
