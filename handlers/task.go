package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/services"
)

// TaskHandler, görev endpoint'lerini yöneten struct.
type TaskHandler struct {
	taskService   services.TaskService
	uploadService services.UploadService
	maxUploadSize int64
}

// NewTaskHandler, constructor.
func NewTaskHandler(
	taskService services.TaskService,
	uploadService services.UploadService,
	maxUploadSize int64,
) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		uploadService: uploadService,
		maxUploadSize: maxUploadSize,
	}
}

// Create godoc
// POST /api/workspaces/{workspaceId}/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Body'deki workspace_id değil, middleware'in doğruladığı geçerlidir
	req.WorkspaceID = workspaceID

	task, err := h.taskService.Create(r.Context(), user.ID, user.Email, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, task)
}

// CreatePersonal godoc
// POST /api/tasks
// Workspace'e bağlı olmayan kişisel görev oluşturur.
func (h *TaskHandler) CreatePersonal(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Bu endpoint'te workspace yoktur — workspace görevleri kendi
	// route'undan, üyelik middleware'inin arkasından oluşturulur
	req.WorkspaceID = ""

	task, err := h.taskService.Create(r.Context(), user.ID, user.Email, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, task)
}

// ListPersonal godoc
// GET /api/tasks
func (h *TaskHandler) ListPersonal(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListPersonal(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, tasks)
}

// List godoc
// GET /api/workspaces/{workspaceId}/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := workspaceIDFromContext(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByWorkspace(r.Context(), workspaceID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, tasks)
}

// Get godoc
// GET /api/tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), r.PathValue("id"), user.ID, user.Email)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, task)
}

// Update godoc
// PATCH /api/tasks/{id}
// Kısmi güncelleme: body'de sadece değişen alanlar gönderilir.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Update(r.Context(), r.PathValue("id"), user.ID, user.Email, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, task)
}

// Delete godoc
// DELETE /api/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), r.PathValue("id"), user.ID, user.Email); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

// UploadAttachment godoc
// POST /api/tasks/{id}/attachment
// Göreve multipart/form-data ile dosya ekler ("file" field'ı).
// Varolan ek yenisiyle değiştirilir.
func (h *TaskHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	task, err := h.uploadService.SaveTaskAttachment(r.Context(), r.PathValue("id"), user.ID, user.Email, header.Filename, file, header.Size)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, task)
}
