// Package middleware — WorkspaceMembershipMiddleware: workspace üyelik kontrolü.
//
// AuthMiddleware'den SONRA çalışır — context'te user bilgisi mevcuttur.
// URL'den {workspaceId} path parametresini alır, üyeliği doğrular ve
// workspaceID'yi context'e ekler. Üye değilse 403 döner.
package middleware

import (
	"context"
	"net/http"

	"github.com/dayzzy/tasky/handlers"
	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/repository"
)

// WorkspaceMembershipMiddleware, workspace üyelik kontrolü middleware'ı.
type WorkspaceMembershipMiddleware struct {
	workspaceRepo repository.WorkspaceRepository
}

// NewWorkspaceMembershipMiddleware, constructor.
func NewWorkspaceMembershipMiddleware(workspaceRepo repository.WorkspaceRepository) *WorkspaceMembershipMiddleware {
	return &WorkspaceMembershipMiddleware{workspaceRepo: workspaceRepo}
}

// Require, workspace üyeliği zorunlu kılan middleware.
// Üyelik email üzerinden kontrol edilir — davet edilen herkes, kayıt
// tarihinden bağımsız olarak email'iyle üyedir.
func (m *WorkspaceMembershipMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		// Go 1.22+ PathValue: route tanımındaki {workspaceId} parametresi
		workspaceID := r.PathValue("workspaceId")
		if workspaceID == "" {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "workspaceId is required")
			return
		}

		isMember, err := m.workspaceRepo.IsMember(r.Context(), workspaceID, user.Email)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusInternalServerError, "failed to check workspace membership")
			return
		}
		if !isMember {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "you are not a member of this workspace")
			return
		}

		ctx := context.WithValue(r.Context(), handlers.WorkspaceIDContextKey, workspaceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
