package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/services"
)

// ReadStateHandler, okunmamış mesaj takibi endpoint'lerini yöneten struct.
type ReadStateHandler struct {
	readStateService services.ReadStateService
	unreadService    services.UnreadService
}

// NewReadStateHandler, constructor.
func NewReadStateHandler(readStateService services.ReadStateService, unreadService services.UnreadService) *ReadStateHandler {
	return &ReadStateHandler{
		readStateService: readStateService,
		unreadService:    unreadService,
	}
}

// MarkRead godoc
// POST /api/read
// Bir sohbeti şu ana kadar okunmuş olarak işaretler.
//
// Body: { "kind": "group"|"direct", "workspace_id": "...", "participant": "..." }
// İşaret monoton ilerler — geç gelen istek sayaçları geri sarmaz.
func (h *ReadStateHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	var req models.MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.readStateService.MarkRead(r.Context(), user.ID, user.Email, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}

// GetUnreads godoc
// GET /api/unreads
// Kullanıcının tüm sohbetlerindeki okunmamış sayılarını tam snapshot
// olarak döner (sıfır sayaçlar listede yer almaz).
func (h *ReadStateHandler) GetUnreads(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	summary, err := h.unreadService.Snapshot(r.Context(), user.ID, user.Email)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, summary)
}
