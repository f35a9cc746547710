package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dayzzy/tasky/database"
	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
)

// sqliteReadMarkerRepo, ReadMarkerRepository interface'inin SQLite implementasyonu.
type sqliteReadMarkerRepo struct {
	db database.TxQuerier
}

// NewSQLiteReadMarkerRepo, constructor — interface döner.
func NewSQLiteReadMarkerRepo(db database.TxQuerier) ReadMarkerRepository {
	return &sqliteReadMarkerRepo{db: db}
}

// Upsert, okuma işaretini günceller (yoksa oluşturur).
//
// MAX(last_read_at, excluded.last_read_at): monotonluk DB seviyesinde
// garanti edilir. İki istek yarışsa bile işaret asla geri gitmez —
// uygulama kodunda ayrıca read-modify-write yapmaya gerek yoktur.
func (r *sqliteReadMarkerRepo) Upsert(ctx context.Context, userID, conversationID string, readAt time.Time) error {
	query := `
		INSERT INTO read_markers (user_id, conversation_id, last_read_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, conversation_id)
		DO UPDATE SET last_read_at = MAX(last_read_at, excluded.last_read_at)`

	_, err := r.db.ExecContext(ctx, query, userID, conversationID, readAt)
	if err != nil {
		return fmt.Errorf("failed to upsert read marker: %w", err)
	}
	return nil
}

func (r *sqliteReadMarkerRepo) Get(ctx context.Context, userID, conversationID string) (*models.ReadMarker, error) {
	query := `
		SELECT user_id, conversation_id, last_read_at
		FROM read_markers WHERE user_id = ? AND conversation_id = ?`

	marker := &models.ReadMarker{}
	err := r.db.QueryRowContext(ctx, query, userID, conversationID).Scan(
		&marker.UserID, &marker.ConversationID, &marker.LastReadAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkg.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get read marker: %w", err)
	}
	return marker, nil
}

// MapByUser, kullanıcının tüm işaretlerini conversation_id → zaman
// haritası olarak döner. İşareti olmayan sohbetler haritada yoktur —
// sayaç hesaplaması bunu "hiç okumamış" (epoch) olarak yorumlar.
func (r *sqliteReadMarkerRepo) MapByUser(ctx context.Context, userID string) (map[string]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT conversation_id, last_read_at FROM read_markers WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list read markers: %w", err)
	}
	defer rows.Close()

	markers := make(map[string]time.Time)
	for rows.Next() {
		var convID string
		var readAt time.Time
		if err := rows.Scan(&convID, &readAt); err != nil {
			return nil, fmt.Errorf("failed to scan read marker: %w", err)
		}
		markers[convID] = readAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating read marker rows: %w", err)
	}
	return markers, nil
}
