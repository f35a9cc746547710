package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// User, bir kullanıcıyı temsil eder.
// DB'deki "users" tablosunun Go karşılığı.
//
// PasswordHash JSON'a asla serialize edilmez (json:"-") —
// API response'larında şifre hash'i sızdırmak ciddi bir güvenlik açığıdır.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Status       string    `json:"status"` // "online", "offline", "focusing"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Kullanıcı durumları. "focusing" odak sayacı çalışırken set edilir.
const (
	StatusOnline   = "online"
	StatusOffline  = "offline"
	StatusFocusing = "focusing"
)

// RegisterRequest, yeni kullanıcı kayıt isteği.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Validate, RegisterRequest'in geçerli olup olmadığını kontrol eder.
// Email normalize edilir (trim + lowercase) — aynı adresin farklı
// büyük/küçük harf varyantları tek hesaba denk gelir.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.DisplayName = strings.TrimSpace(r.DisplayName)

	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(r.Email, "@") || strings.Contains(r.Email, " ") {
		return fmt.Errorf("email is invalid")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(r.Password) > 72 {
		// bcrypt 72 byte'tan uzun şifreleri sessizce keser — açıkça reddet
		return fmt.Errorf("password must be at most 72 characters")
	}

	nameLen := utf8.RuneCountInString(r.DisplayName)
	if nameLen < 1 {
		return fmt.Errorf("display name is required")
	}
	if nameLen > 50 {
		return fmt.Errorf("display name must be at most 50 characters")
	}
	return nil
}

// LoginRequest, giriş isteği.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// UpdateProfileRequest, profil güncelleme isteği.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// Validate, UpdateProfileRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateProfileRequest) Validate() error {
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	nameLen := utf8.RuneCountInString(r.DisplayName)
	if nameLen < 1 {
		return fmt.Errorf("display name is required")
	}
	if nameLen > 50 {
		return fmt.Errorf("display name must be at most 50 characters")
	}
	return nil
}
