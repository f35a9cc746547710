package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/pkg/unread"
	"github.com/dayzzy/tasky/repository"
	"github.com/dayzzy/tasky/ws"
)

// ReadStateService, okuma işaretlerini yönetir.
//
// MarkRead idempotent'tir ve işaret monotondur: repository upsert'i
// MAX() ile yazdığı için geciken bir istek işareti geri çekemez.
type ReadStateService interface {
	MarkRead(ctx context.Context, userID, email string, req *models.MarkReadRequest) error
	MarkConversationRead(ctx context.Context, userID, email, conversationID string) error
}

type readStateService struct {
	readMarkerRepo repository.ReadMarkerRepository
	workspaceRepo  repository.WorkspaceRepository
	unreadService  UnreadService
	hub            ws.EventPublisher
}

// NewReadStateService, constructor.
func NewReadStateService(
	readMarkerRepo repository.ReadMarkerRepository,
	workspaceRepo repository.WorkspaceRepository,
	unreadService UnreadService,
	hub ws.EventPublisher,
) ReadStateService {
	return &readStateService{
		readMarkerRepo: readMarkerRepo,
		workspaceRepo:  workspaceRepo,
		unreadService:  unreadService,
		hub:            hub,
	}
}

// MarkRead, isteği konuşma kimliğine çözer ve işareti günceller.
//
// Kimlik server tarafında üretilir: grup için workspace ID doğrulanır,
// DM için iki email normalize edilip sıralanır. Boş participant
// ErrInvalidParticipant ile reddedilir — bozuk kimlikle işaret yazılmaz.
func (s *readStateService) MarkRead(ctx context.Context, userID, email string, req *models.MarkReadRequest) error {
	conversationID, err := s.resolveConversation(ctx, email, req.Kind, req.WorkspaceID, req.Participant)
	if err != nil {
		return err
	}
	return s.MarkConversationRead(ctx, userID, email, conversationID)
}

// MarkConversationRead, çözülmüş bir konuşma kimliği için işareti yazar,
// kullanıcının diğer tab'larına read_marker_update yayınlar ve güncel
// unread snapshot'ını gönderir.
//
// Erişim kontrolü buradadır: hem REST mark-read hem WS conversation_open
// bu noktadan geçer, client'ın verdiği kimlikle keyfî sohbete işaret
// yazılamaz. İşaret zamanı server saatidir — client saatine güvenilmez.
func (s *readStateService) MarkConversationRead(ctx context.Context, userID, email, conversationID string) error {
	if conversationID == "" {
		return fmt.Errorf("%w: conversation id is empty", pkg.ErrInvalidParticipant)
	}

	allowed, err := s.canAccess(ctx, email, conversationID)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: not a party to this conversation", pkg.ErrForbidden)
	}

	now := time.Now().UTC()
	if err := s.readMarkerRepo.Upsert(ctx, userID, conversationID, now); err != nil {
		return err
	}

	// Diğer tab'lar aynı sohbeti "okundu" göstersin
	s.hub.BroadcastToEmail(email, ws.Event{
		Op: ws.OpReadMarkerUpdate,
		Data: ws.ReadMarkerUpdateData{
			ConversationID: conversationID,
			LastReadAt:     now.Format(time.RFC3339Nano),
		},
	})

	s.unreadService.PushSnapshot(ctx, userID, email)
	return nil
}

// resolveConversation, mark-read isteğindeki kimlik bilgilerini tek bir
// conversation ID'ye çözer. Erişim kontrolü MarkConversationRead'dedir.
func (s *readStateService) resolveConversation(ctx context.Context, email, kind, workspaceID, participant string) (string, error) {
	switch unread.Kind(kind) {
	case unread.KindGroup:
		return unread.GroupID(workspaceID)

	case unread.KindDirect:
		return unread.DirectID(email, participant)

	default:
		return "", fmt.Errorf("%w: unknown conversation kind %q", pkg.ErrBadRequest, kind)
	}
}

// canAccess, kullanıcının sohbetin tarafı olup olmadığını söyler.
// DM kimliği sıralı email çiftidir: kullanıcının email'i ya başta ya
// sonda durur. Diğer her kimlik grup sayılır ve üyelik DB'den doğrulanır.
func (s *readStateService) canAccess(ctx context.Context, email, conversationID string) (bool, error) {
	if strings.HasPrefix(conversationID, email+"_") || strings.HasSuffix(conversationID, "_"+email) {
		return true, nil
	}
	return s.workspaceRepo.IsMember(ctx, conversationID, email)
}
