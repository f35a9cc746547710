package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dayzzy/tasky/pkg/notify"
)

// WebSocket bağlantı sabitleri
const (
	// writeWait: bir mesajı yazmak için maksimum bekleme süresi.
	writeWait = 10 * time.Second

	// pongWait: client'ın heartbeat göndermesi için beklenen maksimum süre.
	// 3 heartbeat kaçırma = 30s × 3 = 90s.
	pongWait = 90 * time.Second

	// maxMessageSize: client'ın gönderebileceği maksimum mesaj boyutu (byte).
	// WS mesajları küçüktür — mesaj içeriği gibi büyük veri HTTP ile gider.
	maxMessageSize = 4096

	// sendBufferSize: her client'ın send channel buffer boyutu.
	// Buffer dolarsa client yavaş demektir — bağlantı koparılır.
	sendBufferSize = 256
)

// Client, tek bir WebSocket bağlantısını temsil eder.
//
// Her bağlantı için iki goroutine çalışır:
// - ReadPump: client'dan gelen event'leri okur ve işler
// - WritePump: send channel'dan gelen veriyi WS'e yazar
// gorilla/websocket aynı anda tek okuma + tek yazma destekler; iki
// goroutine ile okuma ve yazma birbirini bloklamaz.
//
// notifier bağlantıya aittir: açık sohbet ve InitialSync/Live durumu
// tab başına ayrı tutulur. Aynı kullanıcının iki tab'ı farklı ses
// kararları alabilir.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	userID      string
	email       string
	displayName string
	notifier    *notify.Notifier

	send chan []byte
	mu   sync.Mutex // conn.WriteMessage çağrılarını korur
}

// UserID, bağlantının kullanıcı ID'sini döner.
func (c *Client) UserID() string { return c.userID }

// Email, bağlantının normalize email'ini döner.
func (c *Client) Email() string { return c.email }

// DisplayName, bağlantının kullanıcı adını döner.
func (c *Client) DisplayName() string { return c.displayName }

// MarkLive, bağlantının bildirim durumunu InitialSync'ten Live'a geçirir.
// Ready snapshot'ı gönderildikten SONRA çağrılmalıdır — tarihsel mesajlar
// ses çalmaz, yalnızca bundan sonraki canlı mesajlar değerlendirilir.
func (c *Client) MarkLive() { c.notifier.MarkLive() }

// SendEvent, bu bağlantıya tek bir event gönderir.
// Hub callback'lerinin (ready snapshot gibi) tek bağlantıyı hedeflemesi için.
func (c *Client) SendEvent(event Event) {
	event.Seq = c.hub.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event for user %s: %v", c.email, err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("[ws] send buffer full for user %s, dropping connection", c.email)
		c.hub.unregister <- c
	}
}

// ReadPump, WebSocket bağlantısından gelen event'leri okur ve işler.
// Bağlantı kapanana kadar bloklar; kapanınca Hub'dan çıkış yapar.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[ws] failed to set read deadline for user %s: %v", c.email, err)
		return
	}

	for {
		_, rawMessage, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for user %s: %v", c.email, err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(rawMessage, &event); err != nil {
			log.Printf("[ws] invalid message from user %s: %v", c.email, err)
			continue
		}

		c.handleEvent(event)
	}
}

// handleEvent, client'dan gelen event'leri türüne göre işler.
func (c *Client) handleEvent(event Event) {
	switch event.Op {
	case OpHeartbeat:
		// Heartbeat geldi — deadline'ı yenile ve ack gönder.
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("[ws] failed to set read deadline for user %s: %v", c.email, err)
			return
		}
		c.SendEvent(Event{Op: OpHeartbeatAck})

	case OpConversationOpen:
		c.handleConversationOpen(event)

	case OpTyping:
		c.handleTyping(event)

	default:
		log.Printf("[ws] unknown op from user %s: %s", c.email, event.Op)
	}
}

// handleConversationOpen, client'ın "şu an bu sohbet ekranda" bildirimini işler.
//
// Notifier'daki açık sohbet hücresi GÜNCELLENIR — sonraki her ses kararı
// o anki değeri okur. Boş conversation_id sohbetten çıkış demektir.
// Sohbet açılışı aynı zamanda okundu işaretidir; DB tarafı main.go'daki
// OnConversationOpen callback'inde yürür.
func (c *Client) handleConversationOpen(event Event) {
	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return
	}

	var data ConversationOpenData
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return
	}

	c.notifier.SetOpenConversation(data.ConversationID)

	if data.ConversationID != "" && c.hub.onConversationOpen != nil {
		go c.hub.onConversationOpen(c.userID, c.email, data.ConversationID)
	}
}

// handleTyping, typing event'ini diğer kullanıcılara yayınlar.
//
// event.Data tipi any — doğrudan cast edilemez, JSON round-trip ile
// hedef struct'a çevrilir.
func (c *Client) handleTyping(event Event) {
	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return
	}

	var typing TypingData
	if err := json.Unmarshal(dataBytes, &typing); err != nil {
		return
	}

	if typing.ConversationID == "" {
		return
	}

	c.hub.BroadcastToAllExcept(c.email, Event{
		Op: OpTypingStart,
		Data: TypingStartData{
			Email:          c.email,
			DisplayName:    c.displayName,
			ConversationID: typing.ConversationID,
		},
	})
}

// WritePump, send channel'dan gelen veriyi WebSocket'e yazar.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		message, ok := <-c.send
		if !ok {
			// Channel kapatıldı — Hub client'ı çıkardı
			c.writeMessage(websocket.CloseMessage, nil)
			return
		}

		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// writeMessage, WS'e mutex korumasıyla yazar — gorilla/websocket conn'a
// aynı anda birden fazla yazma yasaktır.
func (c *Client) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
