// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: JWT token doğrulaması
//   - authWorkspace: auth + workspace üyelik kontrolü
package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dayzzy/tasky/config"
	"github.com/dayzzy/tasky/middleware"
	"github.com/dayzzy/tasky/repository"
	"github.com/dayzzy/tasky/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı, yoksa Go router literal kelimeyi parametre sanır.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
	workspaceRepo repository.WorkspaceRepository,
	cfg *config.Config,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	workspaceMw := middleware.NewWorkspaceMembershipMiddleware(workspaceRepo)

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	authWorkspace := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(workspaceMw.Require(http.HandlerFunc(handler)))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"tasky"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)

	// User
	mux.Handle("GET /api/auth/me", auth(h.Auth.Me))
	mux.Handle("PATCH /api/auth/me", auth(h.Auth.UpdateProfile))

	// Workspaces
	mux.Handle("GET /api/workspaces", auth(h.Workspace.List))
	mux.Handle("POST /api/workspaces", auth(h.Workspace.Create))
	mux.Handle("GET /api/workspaces/{workspaceId}", authWorkspace(h.Workspace.Get))
	mux.Handle("PATCH /api/workspaces/{workspaceId}", authWorkspace(h.Workspace.Update))
	mux.Handle("DELETE /api/workspaces/{workspaceId}", authWorkspace(h.Workspace.Delete))

	// Workspace members
	mux.Handle("GET /api/workspaces/{workspaceId}/members", authWorkspace(h.Workspace.ListMembers))
	mux.Handle("POST /api/workspaces/{workspaceId}/members", authWorkspace(h.Workspace.InviteMember))
	mux.Handle("DELETE /api/workspaces/{workspaceId}/members/{email}", authWorkspace(h.Workspace.RemoveMember))

	// Workspace mute — bildirim sesi tercihi
	mux.Handle("POST /api/workspaces/{workspaceId}/mute", authWorkspace(h.Workspace.Mute))
	mux.Handle("DELETE /api/workspaces/{workspaceId}/mute", authWorkspace(h.Workspace.Unmute))
	mux.Handle("GET /api/me/mutes", auth(h.Workspace.MutedWorkspaces))

	// Kanban — kolonlar workspace scoped, tekil işlemler id ile
	mux.Handle("GET /api/workspaces/{workspaceId}/columns", authWorkspace(h.Column.List))
	mux.Handle("POST /api/workspaces/{workspaceId}/columns", authWorkspace(h.Column.Create))
	mux.Handle("PATCH /api/columns/{id}", auth(h.Column.Update))
	mux.Handle("DELETE /api/columns/{id}", auth(h.Column.Delete))

	// Tasks — kişisel görevler workspace'siz, /api/tasks altından yönetilir
	mux.Handle("GET /api/workspaces/{workspaceId}/tasks", authWorkspace(h.Task.List))
	mux.Handle("POST /api/workspaces/{workspaceId}/tasks", authWorkspace(h.Task.Create))
	mux.Handle("GET /api/tasks", auth(h.Task.ListPersonal))
	mux.Handle("POST /api/tasks", auth(h.Task.CreatePersonal))
	mux.Handle("GET /api/tasks/{id}", auth(h.Task.Get))
	mux.Handle("PATCH /api/tasks/{id}", auth(h.Task.Update))
	mux.Handle("DELETE /api/tasks/{id}", auth(h.Task.Delete))
	mux.Handle("POST /api/tasks/{id}/attachment", auth(h.Task.UploadAttachment))

	// Messages — konuşma kimliği query/body'den çözülür, yetki service'te
	mux.Handle("POST /api/messages", auth(h.Message.Send))
	mux.Handle("GET /api/messages", auth(h.Message.History))

	// Read state + unread sayaçları
	mux.Handle("POST /api/read", auth(h.ReadState.MarkRead))
	mux.Handle("GET /api/unreads", auth(h.ReadState.GetUnreads))

	// Focus
	mux.Handle("POST /api/focus/start", auth(h.Focus.Start))
	mux.Handle("POST /api/focus/stop", auth(h.Focus.Stop))
	mux.Handle("GET /api/focus/sessions", auth(h.Focus.History))
	mux.Handle("GET /api/focus/stats", auth(h.Focus.Stats))

	// Static file serving — task eklerine erişim
	//
	// http.StripPrefix: URL'den "/api/uploads/" kısmını çıkarır.
	// http.FileServer zaten ".." path'lerini reddeder; ek güvenlik için
	// sadece düz dosya isimleri kabul edilir, subdirectory reddedilir.
	uploadsHandler := http.StripPrefix("/api/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /api/uploads/", uploadsHandler)

	// WebSocket — token query parameter ile authenticate edilir
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// Bu yüzden JWT token URL query parameter olarak gönderilir:
	//   ws://server/ws?token=JWT_TOKEN
	// WS handler kendi içinde token doğrulaması yapar.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
