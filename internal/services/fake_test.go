package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/review-portal/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore is an in-memory stand-in for the three MongoDB repositories.
type memoryStore struct {
	mu            sync.Mutex
	projects      map[primitive.ObjectID]*models.Project
	comments      []models.Comment
	notifications []models.Notification

	// beforeCAS runs inside CompareAndSetDecision before the comparison,
	// letting tests simulate a concurrent writer.
	beforeCAS func(p *models.Project)
	// notifyErr makes CreateNotification fail.
	notifyErr error
	clock     time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		projects: make(map[primitive.ObjectID]*models.Project),
		clock:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memoryStore) lookup(id string) (*models.Project, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", models.ErrNotFound)
	}
	p, ok := m.projects[objID]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}
	return p, nil
}

func clone(p *models.Project) *models.Project {
	c := *p
	c.Versions = append([]models.Version{}, p.Versions...)
	return &c
}

func (m *memoryStore) seed(title string) *models.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &models.Project{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Client:    "Acme",
		Status:    models.DefaultProjectStatus,
		Versions:  []models.Version{},
		Decision:  models.DecisionPending,
		CreatedAt: m.tick(),
	}
	m.projects[p.ID] = p
	return clone(p)
}

func (m *memoryStore) project(id primitive.ObjectID) *models.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.projects[id])
}

func (m *memoryStore) notificationsFor(id primitive.ObjectID) []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.ProjectID != nil && *n.ProjectID == id {
			out = append(out, n)
		}
	}
	return out
}

// ProjectRepository

func (m *memoryStore) CreateProject(_ context.Context, project *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	project.ID = primitive.NewObjectID()
	if project.Versions == nil {
		project.Versions = []models.Version{}
	}
	if project.Decision == "" {
		project.Decision = models.DecisionPending
	}
	if project.Status == "" {
		project.Status = models.DefaultProjectStatus
	}
	m.projects[project.ID] = clone(project)
	return nil
}

func (m *memoryStore) GetProjectByID(_ context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return clone(p), nil
}

func (m *memoryStore) GetProjects(_ context.Context, limit int64) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Project{}
	for _, p := range m.projects {
		out = append(out, *clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) GetProjectIDs(_ context.Context) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []primitive.ObjectID{}
	for id := range m.projects {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memoryStore) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.lookup(id)
	if err != nil {
		return err
	}
	delete(m.projects, p.ID)
	return nil
}

func (m *memoryStore) CountProjects(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.projects)), nil
}

func (m *memoryStore) CountProjectsByDecision(_ context.Context, decision models.Decision) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.projects {
		if p.CurrentDecision() == decision {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) AppendVersion(_ context.Context, id string, version models.Version) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	p.Versions = append(p.Versions, version)
	return clone(p), nil
}

func (m *memoryStore) IncrementReaction(_ context.Context, id string, kind models.ReactionKind) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	switch kind {
	case models.ReactionLike:
		p.Reactions.Like++
	case models.ReactionLove:
		p.Reactions.Love++
	case models.ReactionFire:
		p.Reactions.Fire++
	}
	return clone(p), nil
}

func (m *memoryStore) CompareAndSetDecision(_ context.Context, id string, expected, next models.Decision) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	if m.beforeCAS != nil {
		m.beforeCAS(p)
	}
	if p.CurrentDecision() != expected {
		return nil, fmt.Errorf("set decision: %w", models.ErrConflict)
	}
	p.Decision = next
	return clone(p), nil
}

func (m *memoryStore) SelectFinalVersion(_ context.Context, id string, url string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	p.FinalFile = url
	p.Decision = models.DecisionApproved
	return clone(p), nil
}

// CommentRepository

func (m *memoryStore) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = m.tick()
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memoryStore) GetCommentsByProjectID(_ context.Context, projectID string) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.ProjectID.Hex() == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryStore) GetRecentComments(_ context.Context, limit int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for i := len(m.comments) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, m.comments[i])
	}
	return out, nil
}

func (m *memoryStore) DeleteCommentsByProjectID(_ context.Context, projectID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.comments[:0]
	var n int64
	for _, c := range m.comments {
		if c.ProjectID.Hex() == projectID {
			n++
			continue
		}
		kept = append(kept, c)
	}
	m.comments = kept
	return n, nil
}

func (m *memoryStore) DeleteOrphanedComments(context.Context, []primitive.ObjectID, time.Time) (int64, error) {
	panic("not used")
}

// NotificationRepository

func (m *memoryStore) CreateNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notifyErr != nil {
		return m.notifyErr
	}
	n.ID = primitive.NewObjectID()
	n.CreatedAt = m.tick()
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memoryStore) GetRecent(_ context.Context, limit int64) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Notification{}
	for i := len(m.notifications) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, m.notifications[i])
	}
	return out, nil
}

func (m *memoryStore) GetUnreadCount(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, x := range m.notifications {
		if !x.Read {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) MarkAsRead(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].ID.Hex() == id {
			m.notifications[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("mark read: %w", models.ErrNotFound)
}

func (m *memoryStore) DeleteByProjectID(_ context.Context, projectID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.notifications[:0]
	var n int64
	for _, x := range m.notifications {
		if x.ProjectID != nil && x.ProjectID.Hex() == projectID {
			n++
			continue
		}
		kept = append(kept, x)
	}
	m.notifications = kept
	return n, nil
}

func (m *memoryStore) DeleteOrphaned(context.Context, []primitive.ObjectID, time.Time) (int64, error) {
	panic("not used")
}
