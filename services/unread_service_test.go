package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/ws"
)

var snapshotBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newUnreadFixture(messages []models.Message) (UnreadService, *fakeReadMarkerRepo, *fakePublisher) {
	markerRepo := newFakeReadMarkerRepo()
	hub := &fakePublisher{}
	svc := NewUnreadService(&fakeMessageRepo{snapshot: messages}, markerRepo, newFakeWorkspaceRepo(), hub)
	return svc, markerRepo, hub
}

func TestSnapshotCountsUnread(t *testing.T) {
	svc, _, _ := newUnreadFixture([]models.Message{
		{ConversationID: "ws-1", SenderEmail: "veli@x.com", SentAt: snapshotBase},
		{ConversationID: "ws-1", SenderEmail: "veli@x.com", SentAt: snapshotBase.Add(time.Minute)},
		// Kendi mesajı sayılmaz
		{ConversationID: "ws-1", SenderEmail: "ali@x.com", SentAt: snapshotBase.Add(2 * time.Minute)},
		{ConversationID: "ali@x.com_veli@x.com", SenderEmail: "veli@x.com", SentAt: snapshotBase.Add(3 * time.Minute)},
	})

	summary, err := svc.Snapshot(context.Background(), "u1", "ali@x.com")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ByConversation["ws-1"])
	assert.Equal(t, 1, summary.ByConversation["ali@x.com_veli@x.com"])
	assert.Equal(t, 3, summary.Total)
}

// İşaret yoksa sohbetin tamamı sayılır; işaret ilerledikçe sayaç düşer.
func TestSnapshotRespectsMarker(t *testing.T) {
	svc, markerRepo, _ := newUnreadFixture([]models.Message{
		{ConversationID: "ws-1", SenderEmail: "veli@x.com", SentAt: snapshotBase},
		{ConversationID: "ws-1", SenderEmail: "veli@x.com", SentAt: snapshotBase.Add(time.Minute)},
	})
	ctx := context.Background()

	require.NoError(t, markerRepo.Upsert(ctx, "u1", "ws-1", snapshotBase))

	summary, err := svc.Snapshot(ctx, "u1", "ali@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ByConversation["ws-1"])

	// Tamamı okundu → sohbet haritadan düşer (sıfır sayaç taşınmaz).
	require.NoError(t, markerRepo.Upsert(ctx, "u1", "ws-1", snapshotBase.Add(time.Minute)))

	summary, err = svc.Snapshot(ctx, "u1", "ali@x.com")
	require.NoError(t, err)
	assert.NotContains(t, summary.ByConversation, "ws-1")
	assert.Zero(t, summary.Total)
}

// Snapshot idempotent'tir: araya yazma girmedikçe aynı sonucu üretir.
func TestSnapshotIsIdempotent(t *testing.T) {
	svc, _, _ := newUnreadFixture([]models.Message{
		{ConversationID: "ws-1", SenderEmail: "veli@x.com", SentAt: snapshotBase},
	})
	ctx := context.Background()

	first, err := svc.Snapshot(ctx, "u1", "ali@x.com")
	require.NoError(t, err)
	second, err := svc.Snapshot(ctx, "u1", "ali@x.com")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPushSnapshotBroadcastsToOwner(t *testing.T) {
	svc, _, hub := newUnreadFixture([]models.Message{
		{ConversationID: "ws-1", SenderEmail: "veli@x.com", SentAt: snapshotBase},
	})

	svc.PushSnapshot(context.Background(), "u1", "ali@x.com")

	events := hub.eventsByOp(ws.OpUnreadUpdate)
	require.Len(t, events, 1)
	assert.Equal(t, "ali@x.com", events[0].target)

	data, ok := events[0].event.Data.(ws.UnreadUpdateData)
	require.True(t, ok)
	assert.Equal(t, 1, data.Total)
}
