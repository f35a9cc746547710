package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dayzzy/tasky/database"
	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/pkg/cache"
	"github.com/dayzzy/tasky/pkg/email"
	"github.com/dayzzy/tasky/repository"
	"github.com/dayzzy/tasky/ws"
)

// WorkspaceService interface'i — workspace CRUD, üyelik ve sessize alma.
type WorkspaceService interface {
	Create(ctx context.Context, ownerID, ownerEmail string, req *models.CreateWorkspaceRequest) (*models.Workspace, error)
	Get(ctx context.Context, workspaceID string) (*models.Workspace, error)
	ListMine(ctx context.Context, email string) ([]models.Workspace, error)
	Update(ctx context.Context, workspaceID, userID string, req *models.UpdateWorkspaceRequest) (*models.Workspace, error)
	Delete(ctx context.Context, workspaceID, userID string) error

	InviteMember(ctx context.Context, workspaceID, inviterID, inviterName string, req *models.InviteMemberRequest) error
	RemoveMember(ctx context.Context, workspaceID, requesterID, memberEmail string) error
	ListMembers(ctx context.Context, workspaceID string) ([]models.WorkspaceMember, error)
	MemberEmails(ctx context.Context, workspaceID string) ([]string, error)
	IsMember(ctx context.Context, workspaceID, email string) (bool, error)

	Mute(ctx context.Context, userID, workspaceID string) error
	Unmute(ctx context.Context, userID, workspaceID string) error
	MutedWorkspaces(ctx context.Context, userID string) ([]string, error)
}

// workspaceService, WorkspaceService interface'inin implementasyonu.
//
// memberCache: workspace ID → üye email listesi. Mesaj fan-out'u her
// mesajda üyelik sorgusu atmasın diye kısa TTL ile tutulur; üyelik
// değiştiğinde ilgili entry invalidate edilir.
type workspaceService struct {
	db            *sql.DB
	workspaceRepo repository.WorkspaceRepository
	muteRepo      repository.WorkspaceMuteRepository
	userRepo      repository.UserRepository
	emailSender   email.EmailSender
	hub           ws.EventPublisher
	memberCache   *cache.TTLCache[string, []string]
}

// NewWorkspaceService, constructor.
// emailSender nil olabilir (RESEND_API_KEY yoksa) — davet yine işler,
// sadece email çıkmaz.
func NewWorkspaceService(
	db *sql.DB,
	workspaceRepo repository.WorkspaceRepository,
	muteRepo repository.WorkspaceMuteRepository,
	userRepo repository.UserRepository,
	emailSender email.EmailSender,
	hub ws.EventPublisher,
	memberCache *cache.TTLCache[string, []string],
) WorkspaceService {
	return &workspaceService{
		db:            db,
		workspaceRepo: workspaceRepo,
		muteRepo:      muteRepo,
		userRepo:      userRepo,
		emailSender:   emailSender,
		hub:           hub,
		memberCache:   memberCache,
	}
}

// Create, workspace'i ve sahibinin üyeliğini tek transaction'da oluşturur.
// İkisinden biri başarısızsa diğeri de geri alınır — sahipsiz workspace
// veya workspace'siz üyelik kalmaz.
func (s *workspaceService) Create(ctx context.Context, ownerID, ownerEmail string, req *models.CreateWorkspaceRequest) (*models.Workspace, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	ws := &models.Workspace{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
	}

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txWorkspaceRepo := repository.NewSQLiteWorkspaceRepo(tx)
		if err := txWorkspaceRepo.Create(ctx, ws); err != nil {
			return err
		}
		return txWorkspaceRepo.AddMember(ctx, ws.ID, ownerEmail, ownerEmail)
	})
	if err != nil {
		return nil, err
	}

	return ws, nil
}

func (s *workspaceService) Get(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	return s.workspaceRepo.GetByID(ctx, workspaceID)
}

func (s *workspaceService) ListMine(ctx context.Context, email string) ([]models.Workspace, error) {
	return s.workspaceRepo.ListByMemberEmail(ctx, email)
}

func (s *workspaceService) Update(ctx context.Context, workspaceID, userID string, req *models.UpdateWorkspaceRequest) (*models.Workspace, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	workspace, err := s.requireOwner(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	workspace.Name = req.Name
	workspace.Description = req.Description
	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return nil, err
	}

	s.broadcastToMembers(ctx, workspaceID, ws.Event{Op: ws.OpWorkspaceUpdate, Data: workspace})
	return workspace, nil
}

func (s *workspaceService) Delete(ctx context.Context, workspaceID, userID string) error {
	if _, err := s.requireOwner(ctx, workspaceID, userID); err != nil {
		return err
	}

	// Broadcast silmeden ÖNCE: üyelik satırları cascade ile gidince
	// alıcı listesi kalmaz.
	s.broadcastToMembers(ctx, workspaceID, ws.Event{
		Op:   ws.OpWorkspaceDelete,
		Data: map[string]string{"workspace_id": workspaceID},
	})

	if err := s.workspaceRepo.Delete(ctx, workspaceID); err != nil {
		return err
	}
	s.memberCache.Delete(workspaceID)
	return nil
}

// InviteMember, workspace'e email ile üye ekler.
//
// Davet edilen kişinin kayıtlı olması gerekmez — üyelik email üzerinden
// tutulur. Email gönderimi asenkrondur ve başarısızlığı daveti bozmaz:
// üyelik DB'ye yazıldıysa davet geçerlidir.
func (s *workspaceService) InviteMember(ctx context.Context, workspaceID, inviterID, inviterName string, req *models.InviteMemberRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}

	inviter, err := s.userRepo.GetByID(ctx, inviterID)
	if err != nil {
		return err
	}

	if err := s.workspaceRepo.AddMember(ctx, workspaceID, req.Email, inviter.Email); err != nil {
		return err // ErrAlreadyExists olabilir
	}
	s.memberCache.Delete(workspaceID)

	s.broadcastToMembers(ctx, workspaceID, ws.Event{
		Op:   ws.OpMemberJoin,
		Data: ws.MemberChangeData{WorkspaceID: workspaceID, Email: req.Email},
	})

	if s.emailSender != nil {
		// Asenkron: HTTP isteği email sağlayıcısını beklemez.
		// Request context'i yanıtla birlikte iptal olur — bağımsız context kullanılır.
		go func(toEmail, inviterName, wsName string) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := s.emailSender.SendWorkspaceInvite(sendCtx, toEmail, inviterName, wsName); err != nil {
				log.Printf("[workspace] failed to send invite email to %s: %v", toEmail, err)
			}
		}(req.Email, inviterName, workspace.Name)
	}

	return nil
}

// RemoveMember, üyeyi workspace'ten çıkarır.
// Sahip herkesi çıkarabilir; üye sadece kendini çıkarabilir (ayrılma).
// Sahip kendini çıkaramaz — workspace'i silmesi gerekir.
func (s *workspaceService) RemoveMember(ctx context.Context, workspaceID, requesterID, memberEmail string) error {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}

	isOwner := workspace.OwnerID == requesterID
	isSelf := requester.Email == memberEmail
	if !isOwner && !isSelf {
		return fmt.Errorf("%w: only the owner can remove other members", pkg.ErrForbidden)
	}
	if isOwner && isSelf {
		return fmt.Errorf("%w: owner cannot leave, delete the workspace instead", pkg.ErrBadRequest)
	}

	if err := s.workspaceRepo.RemoveMember(ctx, workspaceID, memberEmail); err != nil {
		return err
	}
	s.memberCache.Delete(workspaceID)

	s.broadcastToMembers(ctx, workspaceID, ws.Event{
		Op:   ws.OpMemberLeave,
		Data: ws.MemberChangeData{WorkspaceID: workspaceID, Email: memberEmail},
	})
	// Çıkarılan kişi artık üye listesinde değil — ayrıca bilgilendirilir
	s.hub.BroadcastToEmail(memberEmail, ws.Event{
		Op:   ws.OpMemberLeave,
		Data: ws.MemberChangeData{WorkspaceID: workspaceID, Email: memberEmail},
	})
	return nil
}

func (s *workspaceService) ListMembers(ctx context.Context, workspaceID string) ([]models.WorkspaceMember, error) {
	return s.workspaceRepo.ListMembers(ctx, workspaceID)
}

// MemberEmails, üye email listesini cache üzerinden döner.
// Fan-out hot path'i — her mesajda DB'ye gitmemek için TTL cache.
func (s *workspaceService) MemberEmails(ctx context.Context, workspaceID string) ([]string, error) {
	if emails, ok := s.memberCache.Get(workspaceID); ok {
		return emails, nil
	}

	emails, err := s.workspaceRepo.ListMemberEmails(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	s.memberCache.Set(workspaceID, emails)
	return emails, nil
}

func (s *workspaceService) IsMember(ctx context.Context, workspaceID, email string) (bool, error) {
	return s.workspaceRepo.IsMember(ctx, workspaceID, email)
}

// Mute, workspace'i kullanıcı için sessize alır.
// Sadece arka plan bildirim sesleri bastırılır — sayaçlar işlemeye devam eder.
func (s *workspaceService) Mute(ctx context.Context, userID, workspaceID string) error {
	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID); err != nil {
		return err
	}
	return s.muteRepo.Mute(ctx, userID, workspaceID)
}

func (s *workspaceService) Unmute(ctx context.Context, userID, workspaceID string) error {
	return s.muteRepo.Unmute(ctx, userID, workspaceID)
}

func (s *workspaceService) MutedWorkspaces(ctx context.Context, userID string) ([]string, error) {
	return s.muteRepo.ListByUser(ctx, userID)
}

// ─── Private Helpers ───

func (s *workspaceService) requireOwner(ctx context.Context, workspaceID, userID string) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace.OwnerID != userID {
		return nil, fmt.Errorf("%w: only the workspace owner can do this", pkg.ErrForbidden)
	}
	return workspace, nil
}

func (s *workspaceService) broadcastToMembers(ctx context.Context, workspaceID string, event ws.Event) {
	emails, err := s.MemberEmails(ctx, workspaceID)
	if err != nil {
		log.Printf("[workspace] failed to resolve members for broadcast: %v", err)
		return
	}
	s.hub.BroadcastToEmails(emails, event)
}
