// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler "ince" olmalı:
// 1. Request'i parse et (JSON → struct, path/query parametreleri)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı içermez, ASLA doğrudan DB'ye erişmez.
package handlers

import (
	"net/http"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
)

// contextKey, context value'ları için özel tip.
// string yerine özel tip kullanmak farklı paketlerin key çakışmasını önler.
type contextKey string

// UserContextKey, AuthMiddleware'in context'e koyduğu *models.User.
const UserContextKey contextKey = "user"

// WorkspaceIDContextKey, WorkspaceMembershipMiddleware'in context'e
// koyduğu doğrulanmış workspace ID.
const WorkspaceIDContextKey contextKey = "workspace_id"

// userFromContext, context'teki kullanıcıyı döner; yoksa 401 yazar.
// Her handler'ın başındaki ortak kalıp.
func userFromContext(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return nil, false
	}
	return user, true
}

// workspaceIDFromContext, membership middleware'in doğruladığı workspace
// ID'yi döner; yoksa 400 yazar.
func workspaceIDFromContext(w http.ResponseWriter, r *http.Request) (string, bool) {
	workspaceID, ok := r.Context().Value(WorkspaceIDContextKey).(string)
	if !ok || workspaceID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "workspace id missing from context")
		return "", false
	}
	return workspaceID, true
}
