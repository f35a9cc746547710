package repository

import (
	"context"
	"time"

	"github.com/dayzzy/tasky/models"
)

// ReadMarkerRepository, okuma işareti veritabanı işlemleri için interface.
//
// Upsert monotondur: mevcut işaretten eski bir zaman yazılamaz —
// geciken veya tekrar oynatılan istekler watermark'ı geri çekemez.
type ReadMarkerRepository interface {
	Upsert(ctx context.Context, userID, conversationID string, readAt time.Time) error
	Get(ctx context.Context, userID, conversationID string) (*models.ReadMarker, error)
	MapByUser(ctx context.Context, userID string) (map[string]time.Time, error)
}
