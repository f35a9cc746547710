package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayzzy/tasky/models"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seedMessage(t *testing.T, repo MessageRepository, id, convID, kind, workspaceID, sender string, sentAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.Message{
		ID: id, ConversationID: convID, Kind: kind, WorkspaceID: workspaceID,
		SenderEmail: sender, SenderName: "Test", Content: "icerik", SentAt: sentAt,
	}))
}

func TestListByConversationPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedMessage(t, repo, fmt.Sprintf("m%d", i), "ws-1", "group", "ws-1", "a@x.com",
			baseTime.Add(time.Duration(i)*time.Minute))
	}
	// Başka sohbetin mesajı sonuçlara karışmamalı.
	seedMessage(t, repo, "diger", "ws-2", "group", "ws-2", "a@x.com", baseTime)

	// Cursor'dan eski 2 mesaj, kronolojik sırada.
	messages, err := repo.ListByConversation(ctx, "ws-1", baseTime.Add(3*time.Minute), 2)
	require.NoError(t, err)

	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "m2", messages[1].ID)
}

func TestListByConversationEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)

	messages, err := repo.ListByConversation(context.Background(), "bos", baseTime, 50)
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.NotNil(t, messages)
}

func TestListForSnapshot(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	// Üyesi olunan workspace'in grup mesajı → dahil
	seedMessage(t, repo, "g1", "ws-1", "group", "ws-1", "veli@x.com", baseTime)
	// Üyesi olunmayan workspace → hariç
	seedMessage(t, repo, "g2", "ws-2", "group", "ws-2", "veli@x.com", baseTime.Add(time.Minute))
	// Kullanıcının taraf olduğu DM'ler (prefix ve suffix konumları) → dahil
	seedMessage(t, repo, "d1", "ali@x.com_veli@x.com", "direct", "", "veli@x.com", baseTime.Add(2*time.Minute))
	seedMessage(t, repo, "d2", "aaa@x.com_ali@x.com", "direct", "", "aaa@x.com", baseTime.Add(3*time.Minute))
	// Başkalarının DM'i → hariç
	seedMessage(t, repo, "d3", "aaa@x.com_veli@x.com", "direct", "", "aaa@x.com", baseTime.Add(4*time.Minute))

	messages, err := repo.ListForSnapshot(ctx, "ali@x.com", []string{"ws-1"})
	require.NoError(t, err)

	ids := make([]string, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}
	// sent_at sıralı döner
	assert.Equal(t, []string{"g1", "d1", "d2"}, ids)
}

// Email'in başka bir email'in son eki olması eşleşme sayılmamalı:
// "li@x.com" kullanıcısı "ali@x.com_veli@x.com" sohbetinin tarafı değildir.
func TestListForSnapshotNoSubstringFalsePositive(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)

	seedMessage(t, repo, "d1", "ali@x.com_veli@x.com", "direct", "", "ali@x.com", baseTime)

	messages, err := repo.ListForSnapshot(context.Background(), "li@x.com", nil)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestListForSnapshotNoWorkspaces(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)

	seedMessage(t, repo, "g1", "ws-1", "group", "ws-1", "veli@x.com", baseTime)
	seedMessage(t, repo, "d1", "ali@x.com_veli@x.com", "direct", "", "veli@x.com", baseTime.Add(time.Minute))

	// Hiç workspace üyeliği yoksa sadece DM'ler döner.
	messages, err := repo.ListForSnapshot(context.Background(), "ali@x.com", nil)
	require.NoError(t, err)

	require.Len(t, messages, 1)
	assert.Equal(t, "d1", messages[0].ID)
}
