// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder; kendi bildirim
//   karar durumunu (notify.Notifier) taşır
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
// 1. Kullanıcı mesaj gönderir → HTTP POST → Service → DB kayıt
// 2. Service, Hub üzerinden alıcılara message_create + unread_update yollar
// 3. Hub her alıcı BAĞLANTISI için ayrı ses kararı verir (notify_sound)
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "message_create", "heartbeat" vb.
// Data: Event'e özgü payload.
// Seq: Her outbound event'e verilen artan sayı — frontend eksik event
// tespiti için takip eder (seq 5'ten sonra seq 7 gelirse 6 kaybolmuştur).
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
	OpTyping    = "typing"    // Kullanıcı bir sohbette yazıyor

	// OpConversationOpen, client'ın o an ekranda açık tuttuğu sohbeti bildirir.
	// Boş conversation_id "hiçbir sohbet açık değil" demektir. Bu bilgi
	// bağlantının notifier'ında MUTABLE durum olarak tutulur — ses kararı
	// her mesajda o anki değeri okur, bağlantı anındaki değeri değil.
	OpConversationOpen = "conversation_open"
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk event — kullanıcı + okunmamış snapshot
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt

	OpMessageCreate = "message_create" // Yeni mesaj — mesajlar immutable, update/delete yok

	// Okunmamış sayaç akışı: her mesaj ve her okundu işaretinde kullanıcıya
	// KOMPLE snapshot gönderilir. Delta yok — kaçan event sayaç bozmaz,
	// bir sonraki snapshot durumu düzeltir.
	OpUnreadUpdate     = "unread_update"
	OpReadMarkerUpdate = "read_marker_update" // Başka bir tab okundu işaretledi
	OpNotifySound      = "notify_sound"       // Bu bağlantı ses çalmalı (in_room / background)

	OpTaskCreate = "task_create"
	OpTaskUpdate = "task_update"
	OpTaskDelete = "task_delete"

	OpColumnCreate = "column_create"
	OpColumnUpdate = "column_update"
	OpColumnDelete = "column_delete" // Payload'da pending'e dönen task ID'leri de var

	OpWorkspaceUpdate = "workspace_update"
	OpWorkspaceDelete = "workspace_delete"
	OpMemberJoin      = "member_join"
	OpMemberLeave     = "member_leave"

	OpPresence    = "presence_update" // online / offline / focusing
	OpTypingStart = "typing_start"
)

// ReadyData, bağlantı kurulduğunda gönderilen ilk snapshot.
type ReadyData struct {
	UserID      string         `json:"user_id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name"`
	Unreads     map[string]int `json:"unreads"`
	UnreadTotal int            `json:"unread_total"`
}

// UnreadUpdateData, okunmamış sayaçların tam snapshot'ı.
type UnreadUpdateData struct {
	ByConversation map[string]int `json:"by_conversation"`
	Total          int            `json:"total"`
}

// NotifySoundData, tek bir bağlantıya gönderilen ses kararı.
// Sound: "in_room" (açık sohbete mesaj) veya "background".
type NotifySoundData struct {
	ConversationID string `json:"conversation_id"`
	Sound          string `json:"sound"`
}

// ReadMarkerUpdateData, okundu işaretinin diğer tab'lara yayını.
type ReadMarkerUpdateData struct {
	ConversationID string `json:"conversation_id"`
	LastReadAt     string `json:"last_read_at"`
}

// ConversationOpenData, client'ın açık sohbet bildirimi.
type ConversationOpenData struct {
	ConversationID string `json:"conversation_id"`
}

// PresenceData, kullanıcı durum değişikliği yayını.
type PresenceData struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// TypingData, client'ın typing bildirimi.
type TypingData struct {
	ConversationID string `json:"conversation_id"`
}

// TypingStartData, diğer kullanıcılara yayınlanan typing bilgisi.
type TypingStartData struct {
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	ConversationID string `json:"conversation_id"`
}

// MemberChangeData, üye katılım/ayrılık yayını.
type MemberChangeData struct {
	WorkspaceID string `json:"workspace_id"`
	Email       string `json:"email"`
}

// ColumnDeleteData, column silme yayını — pending'e dönen task sayısıyla.
type ColumnDeleteData struct {
	ColumnID      string `json:"column_id"`
	WorkspaceID   string `json:"workspace_id"`
	TasksReleased int64  `json:"tasks_released"`
}
