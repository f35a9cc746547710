package repository

import "context"

// WorkspaceMuteRepository, workspace sessize alma işlemleri için interface.
//
// Mute sadece arka plan bildirim seslerini etkiler — okunmamış sayaçları
// ve mesaj akışı değişmez.
type WorkspaceMuteRepository interface {
	Mute(ctx context.Context, userID, workspaceID string) error
	Unmute(ctx context.Context, userID, workspaceID string) error
	IsMuted(ctx context.Context, userID, workspaceID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]string, error)
	MutedEmails(ctx context.Context, workspaceID string) ([]string, error)
}
