package services

import (
	"context"
	"log"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg/unread"
	"github.com/dayzzy/tasky/repository"
	"github.com/dayzzy/tasky/ws"
)

// UnreadService, okunmamış mesaj sayaçlarını hesaplar ve yayınlar.
//
// Hesaplama her zaman TAM snapshot'tır: kullanıcının görebileceği tüm
// mesajlar + okuma işaretleri DB'den okunur ve pkg/unread ile sıfırdan
// sayılır. Artımlı delta yoktur — kaçan bir event veya çakışan iki
// güncelleme sayaç bozamaz, bir sonraki hesap doğru sonucu üretir.
type UnreadService interface {
	Snapshot(ctx context.Context, userID, email string) (*models.UnreadSummary, error)
	PushSnapshot(ctx context.Context, userID, email string)
}

type unreadService struct {
	messageRepo    repository.MessageRepository
	readMarkerRepo repository.ReadMarkerRepository
	workspaceRepo  repository.WorkspaceRepository
	hub            ws.EventPublisher
}

// NewUnreadService, constructor.
func NewUnreadService(
	messageRepo repository.MessageRepository,
	readMarkerRepo repository.ReadMarkerRepository,
	workspaceRepo repository.WorkspaceRepository,
	hub ws.EventPublisher,
) UnreadService {
	return &unreadService{
		messageRepo:    messageRepo,
		readMarkerRepo: readMarkerRepo,
		workspaceRepo:  workspaceRepo,
		hub:            hub,
	}
}

// Snapshot, kullanıcının tüm sohbetlerdeki okunmamış sayılarını hesaplar.
//
// Kaynaklar:
// - Üyesi olduğu workspace'lerin grup mesajları + taraf olduğu DM'ler
// - read_markers tablosundaki işaretler (işaret yoksa sohbetin tamamı sayılır)
// Kendi gönderdiği mesajları sayım dışı bırakma kuralı pkg/unread'dedir.
func (s *unreadService) Snapshot(ctx context.Context, userID, email string) (*models.UnreadSummary, error) {
	workspaces, err := s.workspaceRepo.ListByMemberEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	workspaceIDs := make([]string, len(workspaces))
	for i, w := range workspaces {
		workspaceIDs[i] = w.ID
	}

	messages, err := s.messageRepo.ListForSnapshot(ctx, email, workspaceIDs)
	if err != nil {
		return nil, err
	}

	markers, err := s.readMarkerRepo.MapByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := make([]unread.Message, len(messages))
	for i, m := range messages {
		snapshot[i] = unread.Message{
			SenderEmail:    m.SenderEmail,
			ConversationID: m.ConversationID,
			SentAt:         m.SentAt,
		}
	}

	counts := unread.Count(email, snapshot, markers)
	return &models.UnreadSummary{
		ByConversation: counts.ByConversation,
		Total:          counts.Total,
	}, nil
}

// PushSnapshot, güncel snapshot'ı hesaplar ve kullanıcının tüm
// bağlantılarına unread_update olarak gönderir.
//
// Hata non-fatal'dır: sayaç güncellemesi iletilemese bile mesaj akışı
// bozulmaz, bir sonraki snapshot durumu düzeltir. Bu yüzden error
// dönmez, sadece loglar.
func (s *unreadService) PushSnapshot(ctx context.Context, userID, email string) {
	summary, err := s.Snapshot(ctx, userID, email)
	if err != nil {
		log.Printf("[unread] failed to compute snapshot for %s: %v", email, err)
		return
	}

	s.hub.BroadcastToEmail(email, ws.Event{
		Op: ws.OpUnreadUpdate,
		Data: ws.UnreadUpdateData{
			ByConversation: summary.ByConversation,
			Total:          summary.Total,
		},
	})
}
