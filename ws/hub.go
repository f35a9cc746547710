package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dayzzy/tasky/pkg/notify"
)

// EventPublisher, service katmanının WebSocket event'leri yayınlamak için
// kullandığı interface.
//
// Dependency Inversion: Service'ler Hub'ın concrete struct'ına değil bu
// interface'e bağımlıdır — testte fake EventPublisher geçilebilir.
//
// Adresleme email üzerindendir: workspace üyeliği ve DM tarafları email
// ile tanımlı olduğu için fan-out hedefleri de email listesidir.
type EventPublisher interface {
	BroadcastToAll(event Event)
	BroadcastToAllExcept(excludeEmail string, event Event)
	BroadcastToEmail(email string, event Event)
	BroadcastToEmails(emails []string, event Event)
	NotifySound(recipients []string, senderEmail, conversationID string, sentAt time.Time, muted map[string]bool)
	OnlineEmails() []string
}

// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır (Observer pattern).
//
// clients: email → Client set. Bir kullanıcının birden fazla tab'ı
// olabilir — Go'da set olmadığı için map[*Client]bool kullanılır.
//
// Hub.Run() register/unregister channel'larını select ile dinler;
// broadcast metodları RLock ile doğrudan map üzerinden çalışır.
type Hub struct {
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	// seq: her outbound event'e verilen artan sayaç.
	// atomic.Int64 — birden fazla goroutine güvenle artırabilir.
	seq atomic.Int64

	// Callback'ler main.go'da set edilir (wire-up). Hub service'lere
	// bağımlı olmaz; DB işi gereken her şey callback üzerinden dışarı taşar.
	onClientReady        func(c *Client)
	onUserFirstConnect   func(userID, email string)
	onUserFullDisconnect func(userID, email string)
	onConversationOpen   func(userID, email, conversationID string)
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run, Hub'ın ana event loop'u. main.go'da `go hub.Run()` ile başlatılır.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// OnClientReady, her yeni bağlantı için ready snapshot'ını gönderecek
// callback'i set eder. Callback ready'yi yolladıktan sonra bağlantının
// notifier'ını Live'a geçirmelidir — o ana kadar hiçbir ses kararı üretilmez.
func (h *Hub) OnClientReady(fn func(c *Client)) { h.onClientReady = fn }

// OnUserFirstConnect, kullanıcının İLK bağlantısında (ikinci tab değil)
// çağrılacak callback'i set eder. Presence "online" yayını burada yapılır.
func (h *Hub) OnUserFirstConnect(fn func(userID, email string)) { h.onUserFirstConnect = fn }

// OnUserFullDisconnect, kullanıcının SON bağlantısı koptuğunda çağrılır.
func (h *Hub) OnUserFullDisconnect(fn func(userID, email string)) { h.onUserFullDisconnect = fn }

// OnConversationOpen, client bir sohbet açtığında çağrılır.
// Okundu işaretleme ve snapshot yayını bu callback'te yapılır.
func (h *Hub) OnConversationOpen(fn func(userID, email, conversationID string)) {
	h.onConversationOpen = fn
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()

	first := len(h.clients[client.email]) == 0
	if _, ok := h.clients[client.email]; !ok {
		h.clients[client.email] = make(map[*Client]bool)
	}
	h.clients[client.email][client] = true
	total := len(h.clients[client.email])

	h.mu.Unlock()

	log.Printf("[ws] client connected: user=%s (connections: %d)", client.email, total)

	// Callback'ler ayrı goroutine'de — Hub loop'u DB beklemez ve
	// callback içindeki broadcast'ler mutex ile çakışmaz.
	if h.onClientReady != nil {
		go h.onClientReady(client)
	}
	if first && h.onUserFirstConnect != nil {
		go h.onUserFirstConnect(client.userID, client.email)
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()

	last := false
	if clients, ok := h.clients[client.email]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			close(client.send)

			if len(clients) == 0 {
				delete(h.clients, client.email)
				last = true
			}
		}
	}

	h.mu.Unlock()

	if last {
		log.Printf("[ws] user fully disconnected: %s", client.email)
		if h.onUserFullDisconnect != nil {
			go h.onUserFullDisconnect(client.userID, client.email)
		}
	}
}

// BroadcastToAll, tüm bağlı client'lara event gönderir.
func (h *Hub) BroadcastToAll(event Event) {
	data, ok := h.marshal(&event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.trySend(client, data)
		}
	}
}

// BroadcastToAllExcept, gönderen hariç herkese event gönderir.
// Typing gibi durumlarda kullanıcı kendi event'ini geri almaz.
func (h *Hub) BroadcastToAllExcept(excludeEmail string, event Event) {
	data, ok := h.marshal(&event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for email, clients := range h.clients {
		if email == excludeEmail {
			continue
		}
		for client := range clients {
			h.trySend(client, data)
		}
	}
}

// BroadcastToEmail, bir kullanıcının tüm bağlantılarına event gönderir.
func (h *Hub) BroadcastToEmail(email string, event Event) {
	data, ok := h.marshal(&event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[email] {
		h.trySend(client, data)
	}
}

// BroadcastToEmails, verilen adres listesindeki tüm bağlantılara event gönderir.
// Bağlı olmayan adresler sessizce atlanır.
func (h *Hub) BroadcastToEmails(emails []string, event Event) {
	data, ok := h.marshal(&event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, email := range emails {
		for client := range h.clients[email] {
			h.trySend(client, data)
		}
	}
}

// NotifySound, yeni bir mesaj için alıcı BAĞLANTILARININ her birine ayrı
// ses kararı verir ve gereken bağlantılara notify_sound event'i gönderir.
//
// Karar bağlantı başınadır çünkü "açık sohbet" bilgisi bağlantıya aittir:
// aynı kullanıcının bir tab'ında sohbet açıkken diğerinde kapalı olabilir.
// muted: workspace'i sessize almış kullanıcılar — arka plan sesi bastırılır,
// açık sohbet sesi (in_room) bastırılmaz.
func (h *Hub) NotifySound(recipients []string, senderEmail, conversationID string, sentAt time.Time, muted map[string]bool) {
	now := time.Now()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, email := range recipients {
		for client := range h.clients[email] {
			sound := client.notifier.Decide(senderEmail, conversationID, sentAt, now)
			if sound == notify.SoundNone {
				continue
			}
			if sound == notify.SoundBackground && muted[email] {
				continue
			}

			event := Event{
				Op: OpNotifySound,
				Data: NotifySoundData{
					ConversationID: conversationID,
					Sound:          string(sound),
				},
			}
			data, ok := h.marshal(&event)
			if !ok {
				return
			}
			h.trySend(client, data)
		}
	}
}

// OnlineEmails, bağlı olan tüm kullanıcıların email'lerini döner.
func (h *Hub) OnlineEmails() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	emails := make([]string, 0, len(h.clients))
	for email := range h.clients {
		emails = append(emails, email)
	}
	return emails
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
	}
	h.clients = make(map[string]map[*Client]bool)
	log.Println("[ws] hub shut down, all connections closed")
}

// marshal, event'e seq atar ve JSON'a çevirir.
func (h *Hub) marshal(event *Event) ([]byte, bool) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event: %v", err)
		return nil, false
	}
	return data, true
}

// trySend, client'ın send buffer'ına yazar; buffer doluysa client yavaş
// demektir, bağlantı koparılır. Caller RLock tutuyor olabilir — unregister
// ayrı goroutine'den gönderilir, deadlock olmaz.
func (h *Hub) trySend(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		go func(c *Client) { h.unregister <- c }(client)
	}
}
