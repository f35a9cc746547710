package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/services"
)

// WorkspaceHandler, workspace endpoint'lerini yöneten struct.
type WorkspaceHandler struct {
	workspaceService services.WorkspaceService
}

// NewWorkspaceHandler, constructor.
func NewWorkspaceHandler(workspaceService services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// Create godoc
// POST /api/workspaces
// Yeni workspace oluşturur; oluşturan kişi owner ve ilk üye olur.
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	var req models.CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workspace, err := h.workspaceService.Create(r.Context(), user.ID, user.Email, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, workspace)
}

// List godoc
// GET /api/workspaces
// Kullanıcının üyesi olduğu workspace'leri döner.
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	workspaces, err := h.workspaceService.ListMine(r.Context(), user.Email)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, workspaces)
}

// Get godoc
// GET /api/workspaces/{workspaceId}
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.Get(r.Context(), workspaceID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, workspace)
}

// Update godoc
// PATCH /api/workspaces/{workspaceId}
// Sadece owner güncelleyebilir.
func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	var req models.UpdateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workspace, err := h.workspaceService.Update(r.Context(), workspaceID, user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, workspace)
}

// Delete godoc
// DELETE /api/workspaces/{workspaceId}
// Sadece owner silebilir.
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(r.Context(), workspaceID, user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "workspace deleted"})
}

// ListMembers godoc
// GET /api/workspaces/{workspaceId}/members
func (h *WorkspaceHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(r.Context(), workspaceID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, members)
}

// InviteMember godoc
// POST /api/workspaces/{workspaceId}/members
// Email ile üye davet eder. Davet edilen henüz kayıtlı olmasa bile
// üyeliği yazılır — kayıt olunca workspace'i hazır bulur.
func (h *WorkspaceHandler) InviteMember(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	var req models.InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.workspaceService.InviteMember(r.Context(), workspaceID, user.ID, user.DisplayName, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, map[string]string{"message": "member invited"})
}

// RemoveMember godoc
// DELETE /api/workspaces/{workspaceId}/members/{email}
// Owner herkesi çıkarabilir; üye sadece kendini çıkarabilir (ayrılma).
func (h *WorkspaceHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	memberEmail := r.PathValue("email")
	if memberEmail == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.workspaceService.RemoveMember(r.Context(), workspaceID, user.ID, memberEmail); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "member removed"})
}

// Mute godoc
// POST /api/workspaces/{workspaceId}/mute
// Workspace'in arka plan bildirim seslerini kapatır. Idempotent.
func (h *WorkspaceHandler) Mute(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	if err := h.workspaceService.Mute(r.Context(), user.ID, workspaceID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "workspace muted"})
}

// Unmute godoc
// DELETE /api/workspaces/{workspaceId}/mute
func (h *WorkspaceHandler) Unmute(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	if err := h.workspaceService.Unmute(r.Context(), user.ID, workspaceID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "workspace unmuted"})
}

// MutedWorkspaces godoc
// GET /api/me/mutes
// Kullanıcının sessize aldığı workspace ID'lerini döner.
func (h *WorkspaceHandler) MutedWorkspaces(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	ids, err := h.workspaceService.MutedWorkspaces(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, ids)
}
