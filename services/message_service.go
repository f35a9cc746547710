package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/pkg/ratelimit"
	"github.com/dayzzy/tasky/pkg/unread"
	"github.com/dayzzy/tasky/repository"
	"github.com/dayzzy/tasky/ws"
)

// MessageService, chat mesajlarını yönetir.
//
// Mesajlar immutable'dır — Send ve History dışında operasyon yoktur.
// Send tek yazma noktasıdır ve zincirin tamamını tetikler:
// kayıt → message_create fan-out → bağlantı başına ses kararı →
// alıcı başına unread snapshot yayını.
type MessageService interface {
	Send(ctx context.Context, senderID, senderEmail, senderName string, req *models.SendMessageRequest) (*models.Message, error)
	History(ctx context.Context, email, kind, workspaceID, participant string, before time.Time, limit int) (*models.MessagePage, error)
}

type messageService struct {
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
	muteRepo         repository.WorkspaceMuteRepository
	workspaceService WorkspaceService
	unreadService    UnreadService
	hub              ws.EventPublisher
	limiter          *ratelimit.MessageRateLimiter
}

// NewMessageService, constructor.
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	muteRepo repository.WorkspaceMuteRepository,
	workspaceService WorkspaceService,
	unreadService UnreadService,
	hub ws.EventPublisher,
	limiter *ratelimit.MessageRateLimiter,
) MessageService {
	return &messageService{
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		muteRepo:         muteRepo,
		workspaceService: workspaceService,
		unreadService:    unreadService,
		hub:              hub,
		limiter:          limiter,
	}
}

// Send, yeni bir mesaj oluşturur.
//
// Konuşma kimliği server'da çözülür, zaman damgası server saatidir.
// Kimlik çözülemezse (boş participant) hiçbir yan etki oluşmaz —
// ne mesaj yazılır ne event yayınlanır.
func (s *messageService) Send(ctx context.Context, senderID, senderEmail, senderName string, req *models.SendMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if !s.limiter.Allow(senderID) {
		return nil, fmt.Errorf("%w: slow down", pkg.ErrTooManyRequests)
	}

	conversationID, workspaceID, recipients, err := s.resolveTargets(ctx, senderEmail, req.Kind, req.WorkspaceID, req.Recipient)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Kind:           req.Kind,
		WorkspaceID:    workspaceID,
		SenderEmail:    senderEmail,
		SenderName:     senderName,
		Content:        req.Content,
		SentAt:         time.Now().UTC(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.hub.BroadcastToEmails(recipients, ws.Event{Op: ws.OpMessageCreate, Data: msg})

	// Ses kararı bağlantı başına Hub'da verilir. Workspace'i sessize
	// alanların arka plan sesleri bastırılır; DM'de mute yoktur.
	muted := map[string]bool{}
	if workspaceID != "" {
		mutedEmails, muteErr := s.muteRepo.MutedEmails(ctx, workspaceID)
		if muteErr != nil {
			// Non-fatal: mute listesi alınamazsa sesler bastırılmadan çalınır
			log.Printf("[message] failed to load muted emails for %s: %v", workspaceID, muteErr)
		}
		for _, e := range mutedEmails {
			muted[e] = true
		}
	}
	s.hub.NotifySound(recipients, senderEmail, conversationID, msg.SentAt, muted)

	// Sayaç güncellemeleri asenkron: mesaj kaydı ve yayını sayaçları
	// beklemez. Her kayıtlı alıcı kendi snapshot'ını alır; gönderen
	// atlanır — kendi mesajı kendi sayacını değiştirmez.
	go s.pushUnreadSnapshots(recipients, senderEmail)

	return msg, nil
}

// History, bir sohbetin mesaj geçmişini sayfalı döner.
func (s *messageService) History(ctx context.Context, email, kind, workspaceID, participant string, before time.Time, limit int) (*models.MessagePage, error) {
	conversationID, _, _, err := s.resolveTargets(ctx, email, kind, workspaceID, participant)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if before.IsZero() {
		before = time.Now().UTC().Add(time.Second)
	}

	// limit+1 iste: fazlası geldiyse daha eski sayfa var demektir
	messages, err := s.messageRepo.ListByConversation(ctx, conversationID, before, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[1:] // kronolojik sıralı listede en eski fazlalık baştadır
	}

	return &models.MessagePage{Messages: messages, HasMore: hasMore}, nil
}

// resolveTargets, isteği (conversationID, workspaceID, alıcı listesi)
// üçlüsüne çözer ve gönderenin o sohbette konuşma yetkisini doğrular.
func (s *messageService) resolveTargets(ctx context.Context, senderEmail, kind, workspaceID, recipient string) (string, string, []string, error) {
	switch unread.Kind(kind) {
	case unread.KindGroup:
		member, err := s.workspaceService.IsMember(ctx, workspaceID, senderEmail)
		if err != nil {
			return "", "", nil, err
		}
		if !member {
			return "", "", nil, fmt.Errorf("%w: not a member of this workspace", pkg.ErrForbidden)
		}

		conversationID, err := unread.GroupID(workspaceID)
		if err != nil {
			return "", "", nil, err
		}

		recipients, err := s.workspaceService.MemberEmails(ctx, workspaceID)
		if err != nil {
			return "", "", nil, err
		}
		return conversationID, workspaceID, recipients, nil

	case unread.KindDirect:
		conversationID, err := unread.DirectID(senderEmail, recipient)
		if err != nil {
			return "", "", nil, err
		}
		return conversationID, "", []string{senderEmail, recipient}, nil

	default:
		return "", "", nil, fmt.Errorf("%w: unknown conversation kind %q", pkg.ErrBadRequest, kind)
	}
}

// pushUnreadSnapshots, her kayıtlı alıcı için güncel sayaç snapshot'ını yayınlar.
func (s *messageService) pushUnreadSnapshots(recipients []string, senderEmail string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	targets := make([]string, 0, len(recipients))
	for _, email := range recipients {
		if email != senderEmail {
			targets = append(targets, email)
		}
	}

	users, err := s.userRepo.GetByEmails(ctx, targets)
	if err != nil {
		log.Printf("[message] failed to load recipients for unread push: %v", err)
		return
	}

	for _, u := range users {
		s.unreadService.PushSnapshot(ctx, u.ID, u.Email)
	}
}
