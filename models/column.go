package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Column, kanban panosundaki bir sütunu temsil eder.
// DB'deki "columns" tablosunun Go karşılığı.
//
// Bir task'ın status alanı column ID'ye eşitse task o sütundadır.
type Column struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Title       string    `json:"title"`
	Color       string    `json:"color"`    // Sütun rengi, "#rrggbb"
	Position    int       `json:"position"` // Panodaki soldan sıra
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultColumnColor, renk gönderilmediğinde kullanılan sütun rengi.
const DefaultColumnColor = "#ffeb3b"

// validHexColor, "#rrggbb" biçimini kontrol eder.
func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// CreateColumnRequest, yeni sütun oluşturma isteği.
type CreateColumnRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Title       string `json:"title"`
	Color       string `json:"color"`
}

// Validate, CreateColumnRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateColumnRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Color = strings.ToLower(strings.TrimSpace(r.Color))
	if r.WorkspaceID == "" {
		return fmt.Errorf("workspace_id is required")
	}
	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 {
		return fmt.Errorf("column title is required")
	}
	if titleLen > 100 {
		return fmt.Errorf("column title must be at most 100 characters")
	}
	if r.Color == "" {
		r.Color = DefaultColumnColor
	}
	if !validHexColor(r.Color) {
		return fmt.Errorf("column color must be in #rrggbb format")
	}
	return nil
}

// UpdateColumnRequest, sütun yeniden adlandırma / taşıma / renk isteği.
type UpdateColumnRequest struct {
	Title    *string `json:"title"`
	Color    *string `json:"color"`
	Position *int    `json:"position"`
}

// Validate, UpdateColumnRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateColumnRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		titleLen := utf8.RuneCountInString(*r.Title)
		if titleLen < 1 {
			return fmt.Errorf("column title cannot be empty")
		}
		if titleLen > 100 {
			return fmt.Errorf("column title must be at most 100 characters")
		}
	}
	if r.Color != nil {
		*r.Color = strings.ToLower(strings.TrimSpace(*r.Color))
		if !validHexColor(*r.Color) {
			return fmt.Errorf("column color must be in #rrggbb format")
		}
	}
	if r.Position != nil && *r.Position < 0 {
		return fmt.Errorf("column position cannot be negative")
	}
	return nil
}
