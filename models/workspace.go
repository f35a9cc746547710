package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Workspace, bir çalışma alanını temsil eder.
// DB'deki "workspaces" tablosunun Go karşılığı.
//
// Workspace aynı zamanda grup sohbetinin konuşma kimliğidir:
// grup mesajlarının conversation_id'si workspace ID'ye eşittir.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkspaceMember, bir workspace üyeliğini temsil eder.
// Üyelik email üzerinden tutulur — henüz kayıt olmamış kullanıcılar da
// davet edilebilir, kayıt olduklarında üyelikleri hazırdır.
type WorkspaceMember struct {
	WorkspaceID string    `json:"workspace_id"`
	Email       string    `json:"email"`
	InvitedBy   string    `json:"invited_by"`
	JoinedAt    time.Time `json:"joined_at"`
	User        *User     `json:"user,omitempty"` // JOIN ile dolan kullanıcı bilgisi — kayıtlı değilse nil
}

// CreateWorkspaceRequest, yeni workspace oluşturma isteği.
type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate, CreateWorkspaceRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateWorkspaceRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)

	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 {
		return fmt.Errorf("workspace name is required")
	}
	if nameLen > 100 {
		return fmt.Errorf("workspace name must be at most 100 characters")
	}
	if utf8.RuneCountInString(r.Description) > 500 {
		return fmt.Errorf("workspace description must be at most 500 characters")
	}
	return nil
}

// UpdateWorkspaceRequest, workspace güncelleme isteği.
type UpdateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate, UpdateWorkspaceRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateWorkspaceRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)

	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 {
		return fmt.Errorf("workspace name is required")
	}
	if nameLen > 100 {
		return fmt.Errorf("workspace name must be at most 100 characters")
	}
	if utf8.RuneCountInString(r.Description) > 500 {
		return fmt.Errorf("workspace description must be at most 500 characters")
	}
	return nil
}

// InviteMemberRequest, workspace'e üye davet etme isteği.
type InviteMemberRequest struct {
	Email string `json:"email"`
}

// Validate, InviteMemberRequest'in geçerli olup olmadığını kontrol eder.
// Email normalize edilir — konuşma kimlikleri ve üyelik kontrolü
// lowercase email üzerinden yürüdüğü için burada da aynı form kullanılır.
func (r *InviteMemberRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(r.Email, "@") || strings.Contains(r.Email, " ") {
		return fmt.Errorf("email is invalid")
	}
	return nil
}
