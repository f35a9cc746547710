// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/dayzzy/tasky/config"
	"github.com/dayzzy/tasky/handlers"
	"github.com/dayzzy/tasky/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Workspace *handlers.WorkspaceHandler
	Task      *handlers.TaskHandler
	Column    *handlers.ColumnHandler
	Message   *handlers.MessageHandler
	ReadState *handlers.ReadStateHandler
	Focus     *handlers.FocusHandler
	WS        *ws.Handler
}

// initHandlers, tüm handler'ları service dependency'leri ile oluşturur.
func initHandlers(svcs *Services, hub *ws.Hub, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      handlers.NewAuthHandler(svcs.Auth),
		Workspace: handlers.NewWorkspaceHandler(svcs.Workspace),
		Task:      handlers.NewTaskHandler(svcs.Task, svcs.Upload, cfg.Upload.MaxSize),
		Column:    handlers.NewColumnHandler(svcs.Column),
		Message:   handlers.NewMessageHandler(svcs.Message),
		ReadState: handlers.NewReadStateHandler(svcs.ReadState, svcs.Unread),
		Focus:     handlers.NewFocusHandler(svcs.Focus),
		WS:        ws.NewHandler(hub, svcs.Auth, cfg.Notify.Staleness),
	}
}
