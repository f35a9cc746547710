package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg/notify"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// services.AuthService'in tamamına ihtiyaç yok — sadece token doğrulama.
// Ayrı interface tanımlamak ws → services → ws circular dependency'sini
// de önler; authService bu interface'i implicit olarak karşılar.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket'e yükseltir.
// WebSocket normal HTTP isteği olarak başlar ve upgrade ile kalıcı,
// çift yönlü bağlantıya dönüşür.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: production'da domain kontrolü yapılmalı.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator

	// staleness: bu yaştan eski mesajlar ses çalmaz — her yeni bağlantının
	// notifier'ına aktarılır.
	staleness time.Duration
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, tokenValidator TokenValidator, staleness time.Duration) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
		staleness:      staleness,
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı
// Hub'a kaydeder.
//
// Tarayıcılar WebSocket açılışında özel header gönderemediği için token
// query parameter ile gelir: ws://server/ws?token=JWT
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for user %s: %v", claims.Email, err)
		return
	}

	client := &Client{
		hub:         h.hub,
		conn:        conn,
		userID:      claims.UserID,
		email:       claims.Email,
		displayName: claims.DisplayName,
		notifier:    notify.New(claims.Email, h.staleness),
		send:        make(chan []byte, sendBufferSize),
	}

	h.hub.register <- client

	// WritePump ayrı goroutine'de; ReadPump bu goroutine'de bloklar —
	// handler dönerse bağlantı kapanırdı.
	go client.WritePump()
	client.ReadPump()
}
