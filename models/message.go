package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Message, bir chat mesajını temsil eder.
// DB'deki "messages" tablosunun Go karşılığı.
//
// Mesajlar immutable'dır: gönderildikten sonra düzenlenemez ve silinemez.
// Okunmamış sayacı bu varsayıma dayanır — geçmiş değişmediği için sayaç
// her zaman marker + mesaj listesinden yeniden hesaplanabilir.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"` // Grup: workspace ID, DM: sıralı email çifti
	Kind           string    `json:"kind"`            // "group" veya "direct"
	WorkspaceID    string    `json:"workspace_id,omitempty"`
	SenderEmail    string    `json:"sender_email"`
	SenderName     string    `json:"sender_name"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"` // Server saati — client saatine güvenilmez
}

// SendMessageRequest, yeni mesaj gönderme isteği.
//
// Grup mesajında WorkspaceID dolu olur; DM'de Recipient (karşı tarafın
// email'i) dolu olur. Conversation ID server tarafında üretilir —
// client'ın gönderdiği bir kimliğe güvenilmez.
type SendMessageRequest struct {
	Kind        string `json:"kind"`
	WorkspaceID string `json:"workspace_id"`
	Recipient   string `json:"recipient"`
	Content     string `json:"content"`
}

// Validate, SendMessageRequest'in geçerli olup olmadığını kontrol eder.
// İçerik 1-2000 karakter arası olmalı.
func (r *SendMessageRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	r.Recipient = strings.ToLower(strings.TrimSpace(r.Recipient))

	contentLen := utf8.RuneCountInString(r.Content)
	if contentLen < 1 {
		return fmt.Errorf("message content is required")
	}
	if contentLen > 2000 {
		return fmt.Errorf("message content must be at most 2000 characters")
	}

	switch r.Kind {
	case "group":
		if r.WorkspaceID == "" {
			return fmt.Errorf("workspace_id is required for group messages")
		}
	case "direct":
		if r.Recipient == "" {
			return fmt.Errorf("recipient is required for direct messages")
		}
	default:
		return fmt.Errorf("kind must be \"group\" or \"direct\"")
	}
	return nil
}

// MessagePage, cursor-based pagination sonucu.
// "Bu zamandan önceki N mesajı getir" modeli — yeni mesaj eklendiğinde
// offset tabanlı sayfalamadaki gibi kayma olmaz.
type MessagePage struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more"`
}
