package services

import (
	"context"
	"sync"
	"time"

	"github.com/dayzzy/tasky/models"
	"github.com/dayzzy/tasky/pkg"
	"github.com/dayzzy/tasky/ws"
)

// Test fake'leri: service testleri DB yerine bellek-içi fake repository'ler
// ve event kaydeden bir fake publisher kullanır.

// fakePublisher, yayınlanan event'leri kaydeder.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	target string // "all", email veya "emails"
	emails []string
	event  ws.Event
}

func (f *fakePublisher) BroadcastToAll(event ws.Event) {
	f.record(publishedEvent{target: "all", event: event})
}

func (f *fakePublisher) BroadcastToAllExcept(excludeEmail string, event ws.Event) {
	f.record(publishedEvent{target: "all-except:" + excludeEmail, event: event})
}

func (f *fakePublisher) BroadcastToEmail(email string, event ws.Event) {
	f.record(publishedEvent{target: email, event: event})
}

func (f *fakePublisher) BroadcastToEmails(emails []string, event ws.Event) {
	f.record(publishedEvent{target: "emails", emails: emails, event: event})
}

func (f *fakePublisher) NotifySound(recipients []string, senderEmail, conversationID string, sentAt time.Time, muted map[string]bool) {
}

func (f *fakePublisher) OnlineEmails() []string { return nil }

func (f *fakePublisher) record(e publishedEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakePublisher) eventsByOp(op string) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []publishedEvent
	for _, e := range f.events {
		if e.event.Op == op {
			out = append(out, e)
		}
	}
	return out
}

// fakeReadMarkerRepo, MAX() upsert semantiğini bellekte taklit eder.
type fakeReadMarkerRepo struct {
	mu      sync.Mutex
	markers map[string]map[string]time.Time // userID → convID → lastReadAt
}

func newFakeReadMarkerRepo() *fakeReadMarkerRepo {
	return &fakeReadMarkerRepo{markers: make(map[string]map[string]time.Time)}
}

func (f *fakeReadMarkerRepo) Upsert(ctx context.Context, userID, conversationID string, readAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.markers[userID] == nil {
		f.markers[userID] = make(map[string]time.Time)
	}
	if existing, ok := f.markers[userID][conversationID]; !ok || readAt.After(existing) {
		f.markers[userID][conversationID] = readAt
	}
	return nil
}

func (f *fakeReadMarkerRepo) Get(ctx context.Context, userID, conversationID string) (*models.ReadMarker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	readAt, ok := f.markers[userID][conversationID]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return &models.ReadMarker{UserID: userID, ConversationID: conversationID, LastReadAt: readAt}, nil
}

func (f *fakeReadMarkerRepo) MapByUser(ctx context.Context, userID string) (map[string]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]time.Time, len(f.markers[userID]))
	for k, v := range f.markers[userID] {
		out[k] = v
	}
	return out, nil
}

// fakeMessageRepo, ListForSnapshot için sabit bir mesaj listesi döner.
type fakeMessageRepo struct {
	snapshot []models.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	f.snapshot = append(f.snapshot, *msg)
	return nil
}

func (f *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID string, before time.Time, limit int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.snapshot {
		if m.ConversationID == conversationID && m.SentAt.Before(before) {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeMessageRepo) ListForSnapshot(ctx context.Context, email string, workspaceIDs []string) ([]models.Message, error) {
	return f.snapshot, nil
}

// fakeTaskRepo, görevleri bellekte tutar.
type fakeTaskRepo struct {
	tasks map[string]*models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*models.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	stored := *task
	f.tasks[task.ID] = &stored
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Task, error) {
	out := []models.Task{}
	for _, t := range f.tasks {
		if t.WorkspaceID == workspaceID && workspaceID != "" {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListPersonal(ctx context.Context, userID string) ([]models.Task, error) {
	out := []models.Task{}
	for _, t := range f.tasks {
		if t.WorkspaceID == "" && t.CreatedBy == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return pkg.ErrNotFound
	}
	stored := *task
	f.tasks[task.ID] = &stored
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) SetAttachment(ctx context.Context, id, path string) error {
	task, ok := f.tasks[id]
	if !ok {
		return pkg.ErrNotFound
	}
	task.AttachmentPath = path
	return nil
}

func (f *fakeTaskRepo) ResetStatusForColumn(ctx context.Context, columnID string) (int64, error) {
	var n int64
	for _, t := range f.tasks {
		if t.Status == columnID {
			t.Status = models.TaskStatusPending
			n++
		}
	}
	return n, nil
}

// fakeColumnRepo, sütunları bellekte tutar.
type fakeColumnRepo struct {
	columns map[string]*models.Column
}

func newFakeColumnRepo() *fakeColumnRepo {
	return &fakeColumnRepo{columns: make(map[string]*models.Column)}
}

func (f *fakeColumnRepo) Create(ctx context.Context, col *models.Column) error {
	stored := *col
	f.columns[col.ID] = &stored
	return nil
}

func (f *fakeColumnRepo) GetByID(ctx context.Context, id string) (*models.Column, error) {
	col, ok := f.columns[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *col
	return &copied, nil
}

func (f *fakeColumnRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Column, error) {
	out := []models.Column{}
	for _, c := range f.columns {
		if c.WorkspaceID == workspaceID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeColumnRepo) Update(ctx context.Context, col *models.Column) error {
	if _, ok := f.columns[col.ID]; !ok {
		return pkg.ErrNotFound
	}
	stored := *col
	f.columns[col.ID] = &stored
	return nil
}

func (f *fakeColumnRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.columns[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(f.columns, id)
	return nil
}

// fakeWorkspaceService, task/column service testlerinde üyelik soruları
// için kullanılır — sadece IsMember ve MemberEmails anlamlıdır.
type fakeWorkspaceService struct {
	members map[string][]string // workspaceID → emails
}

func newFakeWorkspaceService() *fakeWorkspaceService {
	return &fakeWorkspaceService{members: make(map[string][]string)}
}

func (f *fakeWorkspaceService) addMember(workspaceID, email string) {
	f.members[workspaceID] = append(f.members[workspaceID], email)
}

func (f *fakeWorkspaceService) IsMember(ctx context.Context, workspaceID, email string) (bool, error) {
	for _, m := range f.members[workspaceID] {
		if m == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWorkspaceService) MemberEmails(ctx context.Context, workspaceID string) ([]string, error) {
	return f.members[workspaceID], nil
}

func (f *fakeWorkspaceService) Create(ctx context.Context, ownerID, ownerEmail string, req *models.CreateWorkspaceRequest) (*models.Workspace, error) {
	return nil, nil
}

func (f *fakeWorkspaceService) Get(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	return nil, pkg.ErrNotFound
}

func (f *fakeWorkspaceService) ListMine(ctx context.Context, email string) ([]models.Workspace, error) {
	return nil, nil
}

func (f *fakeWorkspaceService) Update(ctx context.Context, workspaceID, userID string, req *models.UpdateWorkspaceRequest) (*models.Workspace, error) {
	return nil, nil
}

func (f *fakeWorkspaceService) Delete(ctx context.Context, workspaceID, userID string) error {
	return nil
}

func (f *fakeWorkspaceService) InviteMember(ctx context.Context, workspaceID, inviterID, inviterName string, req *models.InviteMemberRequest) error {
	return nil
}

func (f *fakeWorkspaceService) RemoveMember(ctx context.Context, workspaceID, requesterID, memberEmail string) error {
	return nil
}

func (f *fakeWorkspaceService) ListMembers(ctx context.Context, workspaceID string) ([]models.WorkspaceMember, error) {
	return nil, nil
}

func (f *fakeWorkspaceService) Mute(ctx context.Context, userID, workspaceID string) error { return nil }

func (f *fakeWorkspaceService) Unmute(ctx context.Context, userID, workspaceID string) error {
	return nil
}

func (f *fakeWorkspaceService) MutedWorkspaces(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

// fakeWorkspaceRepo, üyelikleri bellekte tutar.
type fakeWorkspaceRepo struct {
	workspaces []models.Workspace
	members    map[string][]string // workspaceID → emails
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{members: make(map[string][]string)}
}

func (f *fakeWorkspaceRepo) Create(ctx context.Context, w *models.Workspace) error {
	f.workspaces = append(f.workspaces, *w)
	return nil
}

func (f *fakeWorkspaceRepo) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	for i := range f.workspaces {
		if f.workspaces[i].ID == id {
			return &f.workspaces[i], nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (f *fakeWorkspaceRepo) ListByMemberEmail(ctx context.Context, email string) ([]models.Workspace, error) {
	var out []models.Workspace
	for _, w := range f.workspaces {
		for _, m := range f.members[w.ID] {
			if m == email {
				out = append(out, w)
			}
		}
	}
	return out, nil
}

func (f *fakeWorkspaceRepo) Update(ctx context.Context, w *models.Workspace) error { return nil }
func (f *fakeWorkspaceRepo) Delete(ctx context.Context, id string) error           { return nil }

func (f *fakeWorkspaceRepo) AddMember(ctx context.Context, workspaceID, email, invitedBy string) error {
	f.members[workspaceID] = append(f.members[workspaceID], email)
	return nil
}

func (f *fakeWorkspaceRepo) RemoveMember(ctx context.Context, workspaceID, email string) error {
	var kept []string
	for _, m := range f.members[workspaceID] {
		if m != email {
			kept = append(kept, m)
		}
	}
	f.members[workspaceID] = kept
	return nil
}

func (f *fakeWorkspaceRepo) ListMembers(ctx context.Context, workspaceID string) ([]models.WorkspaceMember, error) {
	return nil, nil
}

func (f *fakeWorkspaceRepo) ListMemberEmails(ctx context.Context, workspaceID string) ([]string, error) {
	return f.members[workspaceID], nil
}

func (f *fakeWorkspaceRepo) IsMember(ctx context.Context, workspaceID, email string) (bool, error) {
	for _, m := range f.members[workspaceID] {
		if m == email {
			return true, nil
		}
	}
	return false, nil
}
