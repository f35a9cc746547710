package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/services"
)

// FocusHandler, odak seansı endpoint'lerini yöneten struct.
type FocusHandler struct {
	focusService services.FocusService
}

// NewFocusHandler, constructor.
func NewFocusHandler(focusService services.FocusService) *FocusHandler {
	return &FocusHandler{focusService: focusService}
}

// Start godoc
// POST /api/focus/start
// Kullanıcıyı "focusing" durumuna alır; sayaç client'ta çalışır.
func (h *FocusHandler) Start(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	if err := h.focusService.Start(r.Context(), user.ID, user.Email); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"status": models.StatusFocusing})
}

// Stop godoc
// POST /api/focus/stop
// Tamamlanan seansı kaydeder, kullanıcıyı "online" durumuna döndürür.
func (h *FocusHandler) Stop(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	var req models.RecordFocusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.focusService.Stop(r.Context(), user.ID, user.Email, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, session)
}

// History godoc
// GET /api/focus/sessions?limit=50
func (h *FocusHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	sessions, err := h.focusService.History(r.Context(), user.ID, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, sessions)
}

// Stats godoc
// GET /api/focus/stats
// Toplam ve bugünkü seans istatistikleri.
func (h *FocusHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	stats, err := h.focusService.Stats(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stats)
}
