package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/ws"
)

func newReadStateFixture() (ReadStateService, *fakeReadMarkerRepo, *fakeWorkspaceRepo, *fakePublisher) {
	markerRepo := newFakeReadMarkerRepo()
	workspaceRepo := newFakeWorkspaceRepo()
	hub := &fakePublisher{}
	unreadSvc := NewUnreadService(&fakeMessageRepo{}, markerRepo, workspaceRepo, hub)
	svc := NewReadStateService(markerRepo, workspaceRepo, unreadSvc, hub)
	return svc, markerRepo, workspaceRepo, hub
}

func TestMarkReadGroup(t *testing.T) {
	svc, markerRepo, workspaceRepo, hub := newReadStateFixture()
	ctx := context.Background()

	require.NoError(t, workspaceRepo.AddMember(ctx, "ws-1", "ali@x.com", ""))

	err := svc.MarkRead(ctx, "u1", "ali@x.com", &models.MarkReadRequest{
		Kind: "group", WorkspaceID: "ws-1",
	})
	require.NoError(t, err)

	marker, err := markerRepo.Get(ctx, "u1", "ws-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), marker.LastReadAt, 5*time.Second)

	// Diğer tab'lara işaret + güncel snapshot yayınlanır.
	assert.Len(t, hub.eventsByOp(ws.OpReadMarkerUpdate), 1)
	assert.Len(t, hub.eventsByOp(ws.OpUnreadUpdate), 1)
}

func TestMarkReadGroupRequiresMembership(t *testing.T) {
	svc, markerRepo, _, _ := newReadStateFixture()

	err := svc.MarkRead(context.Background(), "u1", "ali@x.com", &models.MarkReadRequest{
		Kind: "group", WorkspaceID: "ws-1",
	})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	_, err = markerRepo.Get(context.Background(), "u1", "ws-1")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

// DM kimliği server'da üretilir: email'ler normalize edilip sıralanır.
func TestMarkReadDirectResolvesConversationID(t *testing.T) {
	svc, markerRepo, _, _ := newReadStateFixture()
	ctx := context.Background()

	err := svc.MarkRead(ctx, "u1", "veli@x.com", &models.MarkReadRequest{
		Kind: "direct", Participant: "Ali@X.com",
	})
	require.NoError(t, err)

	_, err = markerRepo.Get(ctx, "u1", "ali@x.com_veli@x.com")
	assert.NoError(t, err)
}

// Boş participant işaret yazmadan senkron reddedilir.
func TestMarkReadEmptyParticipant(t *testing.T) {
	svc, markerRepo, _, hub := newReadStateFixture()

	err := svc.MarkRead(context.Background(), "u1", "veli@x.com", &models.MarkReadRequest{
		Kind: "direct", Participant: "   ",
	})
	assert.ErrorIs(t, err, pkg.ErrInvalidParticipant)

	assert.Empty(t, markerRepo.markers["u1"])
	assert.Empty(t, hub.events)
}

func TestMarkReadUnknownKind(t *testing.T) {
	svc, _, _, _ := newReadStateFixture()

	err := svc.MarkRead(context.Background(), "u1", "ali@x.com", &models.MarkReadRequest{Kind: "channel"})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

// conversation_open WS yolundan gelen ham kimlik de aynı erişim
// kontrolünden geçer: üyesi olunmayan workspace'e işaret yazılamaz.
func TestMarkConversationReadRejectsForeignConversation(t *testing.T) {
	svc, markerRepo, _, hub := newReadStateFixture()

	err := svc.MarkConversationRead(context.Background(), "u1", "ali@x.com", "ws-1")
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	assert.Empty(t, markerRepo.markers["u1"])
	assert.Empty(t, hub.events)
}

func TestMarkConversationReadDirectParty(t *testing.T) {
	svc, markerRepo, _, _ := newReadStateFixture()
	ctx := context.Background()

	// DM'in tarafı — kimlik sıralı çiftte sonda da başta da olabilir
	require.NoError(t, svc.MarkConversationRead(ctx, "u1", "ali@x.com", "ali@x.com_veli@x.com"))
	require.NoError(t, svc.MarkConversationRead(ctx, "u2", "veli@x.com", "ali@x.com_veli@x.com"))

	_, err := markerRepo.Get(ctx, "u1", "ali@x.com_veli@x.com")
	assert.NoError(t, err)

	// Tarafı olmadığı DM reddedilir
	err = svc.MarkConversationRead(ctx, "u3", "can@x.com", "ali@x.com_veli@x.com")
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}

// Tekrarlanan mark-read zararsızdır ve işaret asla geri gitmez.
func TestMarkReadIsIdempotent(t *testing.T) {
	svc, markerRepo, workspaceRepo, _ := newReadStateFixture()
	ctx := context.Background()

	require.NoError(t, workspaceRepo.AddMember(ctx, "ws-1", "ali@x.com", ""))

	req := &models.MarkReadRequest{Kind: "group", WorkspaceID: "ws-1"}
	require.NoError(t, svc.MarkRead(ctx, "u1", "ali@x.com", req))

	first, err := markerRepo.Get(ctx, "u1", "ws-1")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, "u1", "ali@x.com", req))

	second, err := markerRepo.Get(ctx, "u1", "ws-1")
	require.NoError(t, err)
	assert.False(t, second.LastReadAt.Before(first.LastReadAt))
}
