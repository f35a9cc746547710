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

// sqliteColumnRepo, ColumnRepository interface'inin SQLite implementasyonu.
type sqliteColumnRepo struct {
	db database.TxQuerier
}

// NewSQLiteColumnRepo, constructor — interface döner.
func NewSQLiteColumnRepo(db database.TxQuerier) ColumnRepository {
	return &sqliteColumnRepo{db: db}
}

func (r *sqliteColumnRepo) Create(ctx context.Context, col *models.Column) error {
	// Yeni sütun panonun en sağına eklenir — position = mevcut max + 1
	query := `
		INSERT INTO columns (id, workspace_id, title, color, position)
		VALUES (?, ?, ?, ?, COALESCE(
			(SELECT MAX(position) + 1 FROM columns WHERE workspace_id = ?), 0))
		RETURNING position, created_at`

	err := r.db.QueryRowContext(ctx, query,
		col.ID, col.WorkspaceID, col.Title, col.Color, col.WorkspaceID,
	).Scan(&col.Position, &col.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create column: %w", err)
	}
	return nil
}

func (r *sqliteColumnRepo) GetByID(ctx context.Context, id string) (*models.Column, error) {
	query := `
		SELECT id, workspace_id, title, color, position, created_at
		FROM columns WHERE id = ?`

	col := &models.Column{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&col.ID, &col.WorkspaceID, &col.Title, &col.Color, &col.Position, &col.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkg.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get column: %w", err)
	}
	return col, nil
}

func (r *sqliteColumnRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Column, error) {
	query := `
		SELECT id, workspace_id, title, color, position, created_at
		FROM columns WHERE workspace_id = ?
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var c models.Column
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.Title, &c.Color, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}
	if columns == nil {
		columns = []models.Column{}
	}
	return columns, nil
}

func (r *sqliteColumnRepo) Update(ctx context.Context, col *models.Column) error {
	query := `UPDATE columns SET title = ?, color = ?, position = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, col.Title, col.Color, col.Position, col.ID)
	if err != nil {
		return fmt.Errorf("failed to update column: %w", err)
	}
	return checkAffected(result)
}

func (r *sqliteColumnRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	return checkAffected(result)
}
