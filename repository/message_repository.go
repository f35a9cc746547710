package repository

import (
	"context"
	"time"

	"github.com/dayzzy/tasky/models"
)

// MessageRepository, mesaj veritabanı işlemleri için interface.
//
// Mesajlar immutable'dır — Update/Delete metodu bilerek yoktur.
// ListForSnapshot, okunmamış sayacının tam yeniden hesaplaması için
// kullanıcının görebileceği tüm mesajları döner.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByConversation(ctx context.Context, conversationID string, before time.Time, limit int) ([]models.Message, error)
	ListForSnapshot(ctx context.Context, email string, workspaceIDs []string) ([]models.Message, error)
}
