package services

import (
	"context"
	"log/slog"

	"github.com/anonto42/review-portal/backend/internal/metrics"
	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

// Notifier records one admin notification per causal event.
type Notifier interface {
	Emit(ctx context.Context, category models.NotificationCategory, projectID *primitive.ObjectID, text string) (*models.Notification, error)
}

// NotificationService owns the admin feed.
type NotificationService struct {
	repo    repositories.NotificationRepository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewNotificationService(repo repositories.NotificationRepository, m *metrics.Metrics, logger *slog.Logger) *NotificationService {
	return &NotificationService{repo: repo, metrics: m, logger: logger.With("service", "notifications")}
}

// Emit writes a notification synchronously. Nothing is batched or deduplicated.
func (s *NotificationService) Emit(ctx context.Context, category models.NotificationCategory, projectID *primitive.ObjectID, text string) (*models.Notification, error) {
	n := &models.Notification{
		Text:      text,
		Category:  category,
		ProjectID: projectID,
		ForAdmin:  true,
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	s.metrics.NotificationEmitted(category)
	return n, nil
}

// ListRecent returns the newest notifications. Storage failures yield an
// empty feed so the admin UI keeps polling.
func (s *NotificationService) ListRecent(ctx context.Context, limit int) []models.Notification {
	notifications, err := s.repo.GetRecent(ctx, int64(ClampNotificationLimit(limit)))
	if err != nil {
		s.logger.WarnContext(ctx, "list notifications failed", "error", err)
		return []models.Notification{}
	}
	return notifications
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	return s.repo.GetUnreadCount(ctx)
}

// MarkRead flips the read flag. Marking an already read notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if !primitive.IsValidObjectID(id) {
		return models.NewValidationError("id", "malformed notification id")
	}
	return s.repo.MarkAsRead(ctx, id)
}

// ClampNotificationLimit maps a missing limit to the default and bounds the rest.
func ClampNotificationLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultNotificationLimit
	case limit > MaxNotificationLimit:
		return MaxNotificationLimit
	default:
		return limit
	}
}
