package mocks

import (
	"context"
	"time"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectRepository is a mock for repositories.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	args := m.Called(ctx, id)
	return project(args)
}

func (m *ProjectRepository) GetProjects(ctx context.Context, limit int64) ([]models.Project, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]models.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetProjectIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	args := m.Called(ctx)
	if ids, ok := args.Get(0).([]primitive.ObjectID); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) DeleteProject(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) CountProjects(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProjectRepository) CountProjectsByDecision(ctx context.Context, decision models.Decision) (int64, error) {
	args := m.Called(ctx, decision)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProjectRepository) AppendVersion(ctx context.Context, id string, version models.Version) (*models.Project, error) {
	args := m.Called(ctx, id, version)
	return project(args)
}

func (m *ProjectRepository) IncrementReaction(ctx context.Context, id string, kind models.ReactionKind) (*models.Project, error) {
	args := m.Called(ctx, id, kind)
	return project(args)
}

func (m *ProjectRepository) CompareAndSetDecision(ctx context.Context, id string, expected, next models.Decision) (*models.Project, error) {
	args := m.Called(ctx, id, expected, next)
	return project(args)
}

func (m *ProjectRepository) SelectFinalVersion(ctx context.Context, id string, url string) (*models.Project, error) {
	args := m.Called(ctx, id, url)
	return project(args)
}

func project(args mock.Arguments) (*models.Project, error) {
	if p, ok := args.Get(0).(*models.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// CommentRepository is a mock for repositories.CommentRepository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetCommentsByProjectID(ctx context.Context, projectID string) ([]models.Comment, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]models.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) GetRecentComments(ctx context.Context, limit int64) ([]models.Comment, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]models.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) DeleteCommentsByProjectID(ctx context.Context, projectID string) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) DeleteOrphanedComments(ctx context.Context, liveProjectIDs []primitive.ObjectID, createdBefore time.Time) (int64, error) {
	args := m.Called(ctx, liveProjectIDs, createdBefore)
	return args.Get(0).(int64), args.Error(1)
}

// NotificationRepository is a mock for repositories.NotificationRepository.
type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *NotificationRepository) GetRecent(ctx context.Context, limit int64) ([]models.Notification, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]models.Notification); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepository) GetUnreadCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationRepository) DeleteByProjectID(ctx context.Context, projectID string) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) DeleteOrphaned(ctx context.Context, liveProjectIDs []primitive.ObjectID, createdBefore time.Time) (int64, error) {
	args := m.Called(ctx, liveProjectIDs, createdBefore)
	return args.Get(0).(int64), args.Error(1)
}

// UserRepository is a mock for repositories.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) CreateFirstUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) DeleteUser(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ClientRepository is a mock for repositories.ClientRepository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) CreateClient(ctx context.Context, client *models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *ClientRepository) GetClients(ctx context.Context) ([]models.Client, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) SearchClientsByPrefix(ctx context.Context, prefix string, limit int) ([]models.Client, error) {
	args := m.Called(ctx, prefix, limit)
	if list, ok := args.Get(0).([]models.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) DeleteClient(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ResourceRepository is a mock for repositories.ResourceRepository.
type ResourceRepository struct {
	mock.Mock
}

func (m *ResourceRepository) CreateResource(ctx context.Context, resource *models.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *ResourceRepository) GetResources(ctx context.Context, category models.ResourceCategory) ([]models.Resource, error) {
	args := m.Called(ctx, category)
	if list, ok := args.Get(0).([]models.Resource); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResourceRepository) GetResourceByID(ctx context.Context, id uint) (*models.Resource, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*models.Resource); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResourceRepository) DeleteResource(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
