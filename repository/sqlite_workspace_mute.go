package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dayzzy/tasky/database"
)

// sqliteWorkspaceMuteRepo, WorkspaceMuteRepository interface'inin SQLite implementasyonu.
type sqliteWorkspaceMuteRepo struct {
	db database.TxQuerier
}

// NewSQLiteWorkspaceMuteRepo, constructor — interface döner.
func NewSQLiteWorkspaceMuteRepo(db database.TxQuerier) WorkspaceMuteRepository {
	return &sqliteWorkspaceMuteRepo{db: db}
}

// Mute, idempotent'tir — zaten sessizdeyse hata dönmez.
func (r *sqliteWorkspaceMuteRepo) Mute(ctx context.Context, userID, workspaceID string) error {
	query := `
		INSERT INTO workspace_mutes (user_id, workspace_id)
		VALUES (?, ?)
		ON CONFLICT(user_id, workspace_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, userID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to mute workspace: %w", err)
	}
	return nil
}

// Unmute da idempotent'tir — kayıt yoksa sessizce başarır.
func (r *sqliteWorkspaceMuteRepo) Unmute(ctx context.Context, userID, workspaceID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM workspace_mutes WHERE user_id = ? AND workspace_id = ?`,
		userID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to unmute workspace: %w", err)
	}
	return nil
}

func (r *sqliteWorkspaceMuteRepo) IsMuted(ctx context.Context, userID, workspaceID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM workspace_mutes WHERE user_id = ? AND workspace_id = ?`,
		userID, workspaceID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check mute: %w", err)
	}
	return true, nil
}

// MutedEmails, bir workspace'i sessize almış kullanıcıların email'lerini döner.
// Mesaj fan-out'unda arka plan seslerini bastırmak için kullanılır.
func (r *sqliteWorkspaceMuteRepo) MutedEmails(ctx context.Context, workspaceID string) ([]string, error) {
	query := `
		SELECT u.email
		FROM workspace_mutes m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = ?`

	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list muted emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan muted email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating muted email rows: %w", err)
	}
	if emails == nil {
		emails = []string{}
	}
	return emails, nil
}

func (r *sqliteWorkspaceMuteRepo) ListByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT workspace_id FROM workspace_mutes WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mutes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan mute: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mute rows: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
