package models

import (
	"fmt"
	"time"
)

// FocusSession, tamamlanmış bir odak (pomodoro) seansını temsil eder.
// DB'deki "focus_sessions" tablosunun Go karşılığı.
//
// Sayaç client tarafında çalışır; server sadece tamamlanan seansları
// kaydeder ve istatistik üretir.
type FocusSession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	TaskID          string    `json:"task_id,omitempty"` // Seans bir göreve bağlanabilir
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
}

// RecordFocusRequest, tamamlanan odak seansını kaydetme isteği.
type RecordFocusRequest struct {
	TaskID          string    `json:"task_id"`
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
}

// Validate, RecordFocusRequest'in geçerli olup olmadığını kontrol eder.
// 12 saatten uzun tek seans muhtemelen client hatasıdır, reddedilir.
func (r *RecordFocusRequest) Validate() error {
	if r.DurationSeconds < 1 {
		return fmt.Errorf("duration_seconds must be positive")
	}
	if r.DurationSeconds > 12*60*60 {
		return fmt.Errorf("duration_seconds is unreasonably large")
	}
	if r.StartedAt.IsZero() {
		return fmt.Errorf("started_at is required")
	}
	return nil
}

// FocusStats, bir kullanıcının odak istatistikleri.
type FocusStats struct {
	TotalSessions int `json:"total_sessions"`
	TotalSeconds  int `json:"total_seconds"`
	TodaySessions int `json:"today_sessions"`
	TodaySeconds  int `json:"today_seconds"`
}
