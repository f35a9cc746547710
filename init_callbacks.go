// Package main — WebSocket Hub callback wire-up.
//
// registerHubCallbacks, Hub'ın ready/presence/conversation callback'lerini ayarlar.
//
// Bu callback'ler neden burada (main package'da)?
// Hub ws paketinde yaşıyor, ama DB güncellemesi service/repo katmanında.
// Hub'ın service'lere bağımlı olmasını istemiyoruz (Dependency Inversion).
// main package wire-up noktasıdır — tüm katmanları birbirine bağlar.
//
// Callback'ler Hub.Run() goroutine'inden ayrı goroutine'de çalışır
// (addClient/removeClient içinde `go callback()` ile çağrılır),
// böylece Hub'ın mutex Lock'u ile BroadcastToAll'ın RLock'u çakışmaz.
package main

import (
	"context"
	"log"
	"time"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/repository"
	"github.com/dayzzy/tasky/services"
	"github.com/dayzzy/tasky/ws"
)

// registerHubCallbacks, tüm Hub callback'lerini register eder.
func registerHubCallbacks(
	hub *ws.Hub,
	userRepo repository.UserRepository,
	unreadService services.UnreadService,
	readStateService services.ReadStateService,
) {
	// ─── Ready Snapshot ───
	//
	// Her yeni bağlantıya önce sayaçların tam snapshot'ı gönderilir, sonra
	// bağlantı Live'a geçirilir. Sıralama önemli: snapshot'tan önce Live
	// olsaydı reconnect replay'leri bildirim sesi üretebilirdi.
	hub.OnClientReady(func(c *ws.Client) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		summary, err := unreadService.Snapshot(ctx, c.UserID(), c.Email())
		if err != nil {
			log.Printf("[ws] failed to build ready snapshot for %s: %v", c.Email(), err)
			summary = &models.UnreadSummary{ByConversation: map[string]int{}}
		}

		c.SendEvent(ws.Event{
			Op: ws.OpReady,
			Data: ws.ReadyData{
				UserID:      c.UserID(),
				Email:       c.Email(),
				DisplayName: c.DisplayName(),
				Unreads:     summary.ByConversation,
				UnreadTotal: summary.Total,
			},
		})

		c.MarkLive()
	})

	// ─── Presence Callback'leri ───

	hub.OnUserFirstConnect(func(userID, email string) {
		if err := userRepo.UpdateStatus(context.Background(), userID, models.StatusOnline); err != nil {
			log.Printf("[presence] failed to set online for user %s: %v", email, err)
			return
		}
		hub.BroadcastToAll(ws.Event{
			Op:   ws.OpPresence,
			Data: ws.PresenceData{Email: email, Status: models.StatusOnline},
		})
		log.Printf("[presence] user %s is now online", email)
	})

	hub.OnUserFullDisconnect(func(userID, email string) {
		if err := userRepo.UpdateStatus(context.Background(), userID, models.StatusOffline); err != nil {
			log.Printf("[presence] failed to set offline for user %s: %v", email, err)
			return
		}
		hub.BroadcastToAll(ws.Event{
			Op:   ws.OpPresence,
			Data: ws.PresenceData{Email: email, Status: models.StatusOffline},
		})
		log.Printf("[presence] user %s is now offline", email)
	})

	// ─── Conversation Open ───
	//
	// Client bir sohbeti açtığında bağlantının notifier'ı zaten güncellendi
	// (ws.Client.handleEvent). Burada kalıcı taraf yapılır: okuma işareti
	// ilerletilir ve kullanıcıya güncel snapshot yayınlanır.
	hub.OnConversationOpen(func(userID, email, conversationID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := readStateService.MarkConversationRead(ctx, userID, email, conversationID); err != nil {
			log.Printf("[ws] failed to mark %s read for %s: %v", conversationID, email, err)
		}
	})
}
