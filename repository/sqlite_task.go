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

// sqliteTaskRepo, TaskRepository interface'inin SQLite implementasyonu.
type sqliteTaskRepo struct {
	db database.TxQuerier
}

// NewSQLiteTaskRepo, constructor — interface döner.
func NewSQLiteTaskRepo(db database.TxQuerier) TaskRepository {
	return &sqliteTaskRepo{db: db}
}

func (r *sqliteTaskRepo) Create(ctx context.Context, task *models.Task) error {
	// NULLIF: boş workspace_id (kişisel görev) NULL olarak yazılır,
	// böylece workspaces FK'sı boş string'e takılmaz.
	query := `
		INSERT INTO tasks (id, workspace_id, title, description, status, priority,
		                   assignee_email, due_at, created_by)
		VALUES (?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.WorkspaceID, task.Title, task.Description,
		task.Status, task.Priority, task.AssigneeEmail, task.DueAt, task.CreatedBy,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *sqliteTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT id, COALESCE(workspace_id, ''), title, description, status, priority,
		       assignee_email, due_at, attachment_path, created_by, created_at, updated_at
		FROM tasks WHERE id = ?`

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.WorkspaceID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.AssigneeEmail, &task.DueAt,
		&task.AttachmentPath, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkg.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (r *sqliteTaskRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Task, error) {
	query := `
		SELECT id, COALESCE(workspace_id, ''), title, description, status, priority,
		       assignee_email, due_at, attachment_path, created_by, created_at, updated_at
		FROM tasks WHERE workspace_id = ?
		ORDER BY created_at DESC`

	return r.listTasks(ctx, query, workspaceID)
}

// ListPersonal, kullanıcının workspace'e bağlı olmayan görevlerini döner.
func (r *sqliteTaskRepo) ListPersonal(ctx context.Context, userID string) ([]models.Task, error) {
	query := `
		SELECT id, COALESCE(workspace_id, ''), title, description, status, priority,
		       assignee_email, due_at, attachment_path, created_by, created_at, updated_at
		FROM tasks WHERE workspace_id IS NULL AND created_by = ?
		ORDER BY created_at DESC`

	return r.listTasks(ctx, query, userID)
}

func (r *sqliteTaskRepo) listTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.WorkspaceID, &t.Title, &t.Description,
			&t.Status, &t.Priority, &t.AssigneeEmail, &t.DueAt,
			&t.AttachmentPath, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (r *sqliteTaskRepo) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?,
		    assignee_email = ?, due_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority,
		task.AssigneeEmail, task.DueAt, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkAffected(result)
}

func (r *sqliteTaskRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkAffected(result)
}

func (r *sqliteTaskRepo) SetAttachment(ctx context.Context, id, path string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET attachment_path = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		path, id)
	if err != nil {
		return fmt.Errorf("failed to set attachment: %w", err)
	}
	return checkAffected(result)
}

// ResetStatusForColumn, silinen column'daki task'ları "pending"e çeker.
// Etkilenen satır sayısını döner — 0 olabilir, hata değildir.
func (r *sqliteTaskRepo) ResetStatusForColumn(ctx context.Context, columnID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE status = ?`,
		models.TaskStatusPending, columnID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset task statuses: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected, nil
}
