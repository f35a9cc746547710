package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Task, bir görevi temsil eder.
// DB'deki "tasks" tablosunun Go karşılığı.
//
// WorkspaceID boşsa görev kişiseldir: sadece oluşturan kullanıcı
// görebilir ve değiştirebilir. DB'de NULL olarak saklanır, Go tarafında
// boş string'dir.
//
// Status serbest metindir: "pending", "completed" veya kanban panosundaki
// bir column ID'si. Column silindiğinde o column'daki task'lar "pending"e
// geri döner — görev kaybolmaz, sadece panodan düşer.
type Task struct {
	ID             string     `json:"id"`
	WorkspaceID    string     `json:"workspace_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"` // "low", "medium", "high"
	AssigneeEmail  string     `json:"assignee_email"`
	DueAt          *time.Time `json:"due_at"` // Nullable — son tarih zorunlu değil
	AttachmentPath string     `json:"attachment_path,omitempty"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Task'ın sabit (column olmayan) durumları.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Geçerli öncelik değerleri.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func validPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// CreateTaskRequest, yeni görev oluşturma isteği.
//
// WorkspaceID boş olabilir: boş workspace kişisel görev demektir,
// sadece oluşturan kullanıcı görür.
type CreateTaskRequest struct {
	WorkspaceID   string     `json:"workspace_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	AssigneeEmail string     `json:"assignee_email"`
	DueAt         *time.Time `json:"due_at"`
}

// Validate, CreateTaskRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.AssigneeEmail = strings.ToLower(strings.TrimSpace(r.AssigneeEmail))

	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 {
		return fmt.Errorf("task title is required")
	}
	if titleLen > 200 {
		return fmt.Errorf("task title must be at most 200 characters")
	}
	if utf8.RuneCountInString(r.Description) > 2000 {
		return fmt.Errorf("task description must be at most 2000 characters")
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !validPriority(r.Priority) {
		return fmt.Errorf("priority must be one of: low, medium, high")
	}
	return nil
}

// UpdateTaskRequest, görev güncelleme isteği.
// Pointer alanlar "gönderilmedi" ile "boş gönderildi" ayrımını sağlar —
// nil olan alanlar güncellenmez.
type UpdateTaskRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Status        *string    `json:"status"`
	Priority      *string    `json:"priority"`
	AssigneeEmail *string    `json:"assignee_email"`
	DueAt         *time.Time `json:"due_at"`
}

// Validate, UpdateTaskRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		titleLen := utf8.RuneCountInString(*r.Title)
		if titleLen < 1 {
			return fmt.Errorf("task title cannot be empty")
		}
		if titleLen > 200 {
			return fmt.Errorf("task title must be at most 200 characters")
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > 2000 {
		return fmt.Errorf("task description must be at most 2000 characters")
	}
	if r.Priority != nil && !validPriority(*r.Priority) {
		return fmt.Errorf("priority must be one of: low, medium, high")
	}
	if r.Status != nil {
		*r.Status = strings.TrimSpace(*r.Status)
		if *r.Status == "" {
			return fmt.Errorf("task status cannot be empty")
		}
	}
	if r.AssigneeEmail != nil {
		*r.AssigneeEmail = strings.ToLower(strings.TrimSpace(*r.AssigneeEmail))
	}
	return nil
}
