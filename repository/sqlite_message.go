package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dayzzy/tasky/database"
	"github.com/dayzzy/tasky/models"
)

// sqliteMessageRepo, MessageRepository interface'inin SQLite implementasyonu.
type sqliteMessageRepo struct {
	db database.TxQuerier
}

// NewSQLiteMessageRepo, constructor — interface döner.
func NewSQLiteMessageRepo(db database.TxQuerier) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

func (r *sqliteMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, kind, workspace_id,
		                      sender_email, sender_name, content, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.ConversationID, msg.Kind, msg.WorkspaceID,
		msg.SenderEmail, msg.SenderName, msg.Content, msg.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListByConversation, cursor-based pagination ile mesaj geçmişini döner.
// before'dan eski en fazla limit mesaj, eskiden yeniye sıralı.
func (r *sqliteMessageRepo) ListByConversation(ctx context.Context, conversationID string, before time.Time, limit int) ([]models.Message, error) {
	// DESC + LIMIT ile en yeni N mesajı al, sonra ters çevir —
	// "son 50 mesaj ama kronolojik sırada" istenen budur.
	query := `
		SELECT id, conversation_id, kind, workspace_id,
		       sender_email, sender_name, content, sent_at
		FROM messages
		WHERE conversation_id = ? AND sent_at < ?
		ORDER BY sent_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, conversationID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(
			&m.ID, &m.ConversationID, &m.Kind, &m.WorkspaceID,
			&m.SenderEmail, &m.SenderName, &m.Content, &m.SentAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	// Ters çevir: DESC geldi, kronolojik dönsün
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// ListForSnapshot, okunmamış hesaplaması için kullanıcının görebileceği
// tüm mesajları döner: üyesi olduğu workspace'lerin grup mesajları ve
// taraf olduğu DM'ler.
//
// DM eşleşmesi conversation_id formatına dayanır: "a_b" (a <= b, lowercase).
// Kullanıcının email'i ya "email_" prefix'i ya da "_email" suffix'idir —
// substr ile birebir karşılaştırılır, LIKE'ın joker karakter sorunları yoktur.
func (r *sqliteMessageRepo) ListForSnapshot(ctx context.Context, email string, workspaceIDs []string) ([]models.Message, error) {
	var conditions []string
	var args []any

	if len(workspaceIDs) > 0 {
		placeholders := strings.Repeat("?,", len(workspaceIDs))
		placeholders = placeholders[:len(placeholders)-1]
		conditions = append(conditions,
			fmt.Sprintf("(kind = 'group' AND workspace_id IN (%s))", placeholders))
		for _, id := range workspaceIDs {
			args = append(args, id)
		}
	}

	conditions = append(conditions, `
		(kind = 'direct' AND (
			substr(conversation_id, 1, length(?)) = ?
			OR substr(conversation_id, -length(?)) = ?
		))`)
	prefix := email + "_"
	suffix := "_" + email
	args = append(args, prefix, prefix, suffix, suffix)

	query := fmt.Sprintf(`
		SELECT id, conversation_id, kind, workspace_id,
		       sender_email, sender_name, content, sent_at
		FROM messages
		WHERE %s
		ORDER BY sent_at`, strings.Join(conditions, " OR "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(
			&m.ID, &m.ConversationID, &m.Kind, &m.WorkspaceID,
			&m.SenderEmail, &m.SenderName, &m.Content, &m.SentAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
