package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dayzzy/tasky/database"
	"github.com/dayzzy/tasky/models"
)

// sqliteFocusRepo, FocusRepository interface'inin SQLite implementasyonu.
type sqliteFocusRepo struct {
	db database.TxQuerier
}

// NewSQLiteFocusRepo, constructor — interface döner.
func NewSQLiteFocusRepo(db database.TxQuerier) FocusRepository {
	return &sqliteFocusRepo{db: db}
}

func (r *sqliteFocusRepo) Create(ctx context.Context, session *models.FocusSession) error {
	query := `
		INSERT INTO focus_sessions (id, user_id, task_id, duration_seconds, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.TaskID,
		session.DurationSeconds, session.StartedAt, session.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create focus session: %w", err)
	}
	return nil
}

func (r *sqliteFocusRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.FocusSession, error) {
	query := `
		SELECT id, user_id, task_id, duration_seconds, started_at, ended_at
		FROM focus_sessions
		WHERE user_id = ?
		ORDER BY started_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.FocusSession
	for rows.Next() {
		var s models.FocusSession
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.TaskID, &s.DurationSeconds, &s.StartedAt, &s.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan focus session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating focus session rows: %w", err)
	}
	if sessions == nil {
		sessions = []models.FocusSession{}
	}
	return sessions, nil
}

// Stats, toplam ve bugünkü seans istatistiklerini tek sorguda hesaplar.
// dayStart: "bugün"ün başlangıcı — timezone kararı service katmanında verilir.
func (r *sqliteFocusRepo) Stats(ctx context.Context, userID string, dayStart time.Time) (*models.FocusStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(duration_seconds), 0),
		       COALESCE(SUM(CASE WHEN started_at >= ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN started_at >= ? THEN duration_seconds ELSE 0 END), 0)
		FROM focus_sessions WHERE user_id = ?`

	stats := &models.FocusStats{}
	err := r.db.QueryRowContext(ctx, query, dayStart, dayStart, userID).Scan(
		&stats.TotalSessions, &stats.TotalSeconds,
		&stats.TodaySessions, &stats.TodaySeconds,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get focus stats: %w", err)
	}
	return stats, nil
}
