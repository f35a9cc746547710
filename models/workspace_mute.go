package models

import "time"

// WorkspaceMute, bir kullanıcının sessize aldığı workspace'i temsil eder.
// DB'deki "workspace_mutes" tablosunun Go karşılığı.
//
// Sessize alma sadece arka plan bildirim seslerini bastırır —
// okunmamış sayaçları etkilenmez, mesajlar normal akar.
type WorkspaceMute struct {
	UserID      string    `json:"user_id"`
	WorkspaceID string    `json:"workspace_id"`
	MutedAt     time.Time `json:"muted_at"`
}
