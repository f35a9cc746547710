package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/services"
)

// MessageHandler, chat mesajı endpoint'lerini yöneten struct.
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler, constructor.
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send godoc
// POST /api/messages
// Yeni mesaj gönderir.
//
// Body: { "kind": "group"|"direct", "workspace_id": "...", "recipient": "...", "content": "..." }
// Konuşma kimliği ve zaman damgası server'da belirlenir.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.Send(r.Context(), user.ID, user.Email, user.DisplayName, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}

// History godoc
// GET /api/messages?kind=group&workspace_id=X — workspace sohbeti
// GET /api/messages?kind=direct&participant=a@b.c — birebir sohbet
//
// Query parametreleri:
// - before: RFC3339 zaman damgası, bu andan önceki mesajlar (boşsa en yeniler)
// - limit: sayfa boyutu (default 50, max 100)
func (h *MessageHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	var before time.Time
	if b := q.Get("before"); b != "" {
		parsed, err := time.Parse(time.RFC3339, b)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "before must be RFC3339")
			return
		}
		before = parsed
	}

	limit := 0
	if l := q.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	page, err := h.messageService.History(r.Context(), user.Email, q.Get("kind"), q.Get("workspace_id"), q.Get("participant"), before, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}
