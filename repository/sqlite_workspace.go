package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dayzzy/tasky/database"
	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
)

// sqliteWorkspaceRepo, WorkspaceRepository interface'inin SQLite implementasyonu.
type sqliteWorkspaceRepo struct {
	db database.TxQuerier
}

// NewSQLiteWorkspaceRepo, constructor — interface döner.
func NewSQLiteWorkspaceRepo(db database.TxQuerier) WorkspaceRepository {
	return &sqliteWorkspaceRepo{db: db}
}

func (r *sqliteWorkspaceRepo) Create(ctx context.Context, ws *models.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, description, owner_id)
		VALUES (?, ?, ?, ?)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		ws.ID, ws.Name, ws.Description, ws.OwnerID,
	).Scan(&ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	return nil
}

func (r *sqliteWorkspaceRepo) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM workspaces WHERE id = ?`

	ws := &models.Workspace{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ws.ID, &ws.Name, &ws.Description, &ws.OwnerID, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkg.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return ws, nil
}

// ListByMemberEmail, kullanıcının üyesi olduğu tüm workspace'leri döner.
func (r *sqliteWorkspaceRepo) ListByMemberEmail(ctx context.Context, email string) ([]models.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.description, w.owner_id, w.created_at, w.updated_at
		FROM workspaces w
		INNER JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.email = ?
		ORDER BY w.created_at`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []models.Workspace
	for rows.Next() {
		var ws models.Workspace
		if err := rows.Scan(
			&ws.ID, &ws.Name, &ws.Description, &ws.OwnerID, &ws.CreatedAt, &ws.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workspace rows: %w", err)
	}
	if workspaces == nil {
		workspaces = []models.Workspace{}
	}
	return workspaces, nil
}

func (r *sqliteWorkspaceRepo) Update(ctx context.Context, ws *models.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, ws.Name, ws.Description, ws.ID)
	if err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}
	return checkAffected(result)
}

func (r *sqliteWorkspaceRepo) Delete(ctx context.Context, id string) error {
	// ON DELETE CASCADE: üyeler, task'lar, column'lar ve mute'lar da silinir
	result, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return checkAffected(result)
}

func (r *sqliteWorkspaceRepo) AddMember(ctx context.Context, workspaceID, email, invitedBy string) error {
	query := `
		INSERT INTO workspace_members (workspace_id, email, invited_by)
		VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, workspaceID, email, invitedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: already a member", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (r *sqliteWorkspaceRepo) RemoveMember(ctx context.Context, workspaceID, email string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM workspace_members WHERE workspace_id = ? AND email = ?`,
		workspaceID, email)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return checkAffected(result)
}

// ListMembers, üyeleri kayıtlı kullanıcı bilgileriyle birlikte döner.
// LEFT JOIN: henüz kayıt olmamış davetliler de listede görünür (User nil).
func (r *sqliteWorkspaceRepo) ListMembers(ctx context.Context, workspaceID string) ([]models.WorkspaceMember, error) {
	query := `
		SELECT m.workspace_id, m.email, m.invited_by, m.joined_at,
		       u.id, u.display_name, u.status
		FROM workspace_members m
		LEFT JOIN users u ON u.email = m.email
		WHERE m.workspace_id = ?
		ORDER BY m.joined_at`

	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.WorkspaceMember
	for rows.Next() {
		var m models.WorkspaceMember
		var userID, displayName, status sql.NullString
		if err := rows.Scan(
			&m.WorkspaceID, &m.Email, &m.InvitedBy, &m.JoinedAt,
			&userID, &displayName, &status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		if userID.Valid {
			m.User = &models.User{
				ID:          userID.String,
				Email:       m.Email,
				DisplayName: displayName.String,
				Status:      status.String,
			}
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	if members == nil {
		members = []models.WorkspaceMember{}
	}
	return members, nil
}

// ListMemberEmails, WS fan-out gibi sadece adres listesi gereken yerler için
// hafif sorgu.
func (r *sqliteWorkspaceRepo) ListMemberEmails(ctx context.Context, workspaceID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT email FROM workspace_members WHERE workspace_id = ?`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan member email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member email rows: %w", err)
	}
	if emails == nil {
		emails = []string{}
	}
	return emails, nil
}

func (r *sqliteWorkspaceRepo) IsMember(ctx context.Context, workspaceID, email string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM workspace_members WHERE workspace_id = ? AND email = ?`,
		workspaceID, email).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}
