// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
//
// Sıralama kuralı: workspaceService ve unreadService diğer service'lerden
// ÖNCE oluşturulmalı — message/task/column/read-state hepsi onlara bağımlı.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/dayzzy/tasky/config"
	"github.com/dayzzy/tasky/pkg/cache"
	"github.com/dayzzy/tasky/pkg/email"
	"github.com/dayzzy/tasky/pkg/ratelimit"
	"github.com/dayzzy/tasky/services"
	"github.com/dayzzy/tasky/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth      services.AuthService
	Workspace services.WorkspaceService
	Task      services.TaskService
	Column    services.ColumnService
	Message   services.MessageService
	Unread    services.UnreadService
	ReadState services.ReadStateService
	Focus     services.FocusService
	Upload    services.UploadService
}

// initServices, tüm service'leri oluşturur.
//
// memberCache: workspace üye listeleri fan-out hot path'inde her mesajda
// gerekir; 30 saniyelik TTL cache DB yükünü düşürür. Üyelik değişiminde
// workspaceService cache'i invalidate eder.
//
// messageLimiter: 5 saniyede 5 mesaj, ihlalde 15 saniye cooldown.
func initServices(db *sql.DB, repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, error) {
	// ─── Email service (opsiyonel) ───
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Println("[main] email service disabled (RESEND_API_KEY not set)")
	}

	memberCache := cache.New[string, []string](30*time.Second, time.Minute)
	messageLimiter := ratelimit.NewMessageRateLimiter(5, 5*time.Second, 15*time.Second)

	authService := services.NewAuthService(
		repos.User, repos.Session,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
	)

	workspaceService := services.NewWorkspaceService(
		db, repos.Workspace, repos.WorkspaceMute, repos.User,
		emailSender, hub, memberCache,
	)

	unreadService := services.NewUnreadService(repos.Message, repos.ReadMarker, repos.Workspace, hub)
	readStateService := services.NewReadStateService(repos.ReadMarker, repos.Workspace, unreadService, hub)

	messageService := services.NewMessageService(
		repos.Message, repos.User, repos.WorkspaceMute,
		workspaceService, unreadService, hub, messageLimiter,
	)

	taskService := services.NewTaskService(repos.Task, repos.Column, workspaceService, hub)
	columnService := services.NewColumnService(db, repos.Column, repos.Task, workspaceService, hub)
	focusService := services.NewFocusService(repos.Focus, repos.Task, repos.User, hub)

	uploadService, err := services.NewUploadService(repos.Task, workspaceService, cfg.Upload.Dir, cfg.Upload.MaxSize)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:      authService,
		Workspace: workspaceService,
		Task:      taskService,
		Column:    columnService,
		Message:   messageService,
		Unread:    unreadService,
		ReadState: readStateService,
		Focus:     focusService,
		Upload:    uploadService,
	}, nil
}
