package models

import "time"

// Session, bir refresh token oturumunu temsil eder.
// DB'deki "sessions" tablosunun Go karşılığı.
//
// Refresh token'ın kendisi değil SHA-256 hash'i saklanır —
// DB sızıntısında token'lar kullanılamaz olur.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsExpired, oturumun süresi dolmuş mu kontrol eder.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
