package models

import "time"

// ReadMarker, bir kullanıcının bir sohbette en son ne zamana kadar
// okuduğunu tutan su seviyesi işaretidir (watermark).
// DB'deki "read_markers" tablosunun Go karşılığı.
//
// Kullanıcı × sohbet başına tek satır vardır ve last_read_at sadece
// ileri gider — eski bir istek mevcut işareti geri çekemez.
type ReadMarker struct {
	UserID         string    `json:"user_id"`
	ConversationID string    `json:"conversation_id"`
	LastReadAt     time.Time `json:"last_read_at"`
}

// MarkReadRequest, bir sohbeti okundu işaretleme isteği.
//
// Grup sohbeti için workspace_id, DM için participant (karşı tarafın
// email'i) gönderilir — conversation ID server tarafında çözülür.
type MarkReadRequest struct {
	Kind        string `json:"kind"`
	WorkspaceID string `json:"workspace_id"`
	Participant string `json:"participant"`
}

// UnreadSummary, kullanıcının tüm sohbetlerdeki okunmamış sayılarının
// snapshot'ı. Her yeniden hesaplamada komple üretilir — artımlı delta yok.
type UnreadSummary struct {
	ByConversation map[string]int `json:"by_conversation"`
	Total          int            `json:"total"`
}
