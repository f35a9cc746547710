package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/services"
)

// ColumnHandler, kanban kolonu endpoint'lerini yöneten struct.
type ColumnHandler struct {
	columnService services.ColumnService
}

// NewColumnHandler, constructor.
func NewColumnHandler(columnService services.ColumnService) *ColumnHandler {
	return &ColumnHandler{columnService: columnService}
}

// Create godoc
// POST /api/workspaces/{workspaceId}/columns
// Yeni kolon en sona eklenir.
func (h *ColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	var req models.CreateColumnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.WorkspaceID = workspaceID

	column, err := h.columnService.Create(r.Context(), user.Email, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, column)
}

// List godoc
// GET /api/workspaces/{workspaceId}/columns
// Kolonlar position sırasıyla döner.
func (h *ColumnHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	columns, err := h.columnService.ListByWorkspace(r.Context(), workspaceID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, columns)
}

// Update godoc
// PATCH /api/columns/{id}
func (h *ColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	var req models.UpdateColumnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	column, err := h.columnService.Update(r.Context(), r.PathValue("id"), user.Email, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, column)
}

// Delete godoc
// DELETE /api/columns/{id}
// Kolondaki görevler silinmez, "pending" durumuna döner.
func (h *ColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	if err := h.columnService.Delete(r.Context(), r.PathValue("id"), user.Email); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "column deleted"})
}
