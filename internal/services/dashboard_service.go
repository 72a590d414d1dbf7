package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/repositories"
	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	dashboardCacheKey   = "activity"
	dashboardFeedLength = 5
)

// DashboardService builds the admin home summary and caches it briefly.
type DashboardService struct {
	projects repositories.ProjectRepository
	comments repositories.CommentRepository
	ttl      time.Duration
	cache    *cache.Cache
	logger   *slog.Logger
}

func NewDashboardService(projects repositories.ProjectRepository, comments repositories.CommentRepository, ttl time.Duration, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		projects: projects,
		comments: comments,
		ttl:      ttl,
		cache:    cache.New(ttl, 2*ttl),
		logger:   logger.With("service", "dashboard"),
	}
}

// Activity never fails. Parts that cannot be read are left empty and the
// degraded result is not cached.
func (s *DashboardService) Activity(ctx context.Context) models.DashboardActivity {
	if cached, ok := s.cache.Get(dashboardCacheKey); ok {
		return cached.(models.DashboardActivity)
	}

	activity := models.DashboardActivity{
		Comments: []models.DashboardComment{},
		Projects: []models.Project{},
	}
	complete := true

	stats, err := s.stats(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "dashboard stats failed", "error", err)
		complete = false
	} else {
		activity.Stats = stats
	}

	if comments, err := s.comments.GetRecentComments(ctx, dashboardFeedLength); err != nil {
		s.logger.WarnContext(ctx, "dashboard comments failed", "error", err)
		complete = false
	} else {
		activity.Comments = s.withTitles(ctx, comments)
	}

	if projects, err := s.projects.GetProjects(ctx, dashboardFeedLength); err != nil {
		s.logger.WarnContext(ctx, "dashboard projects failed", "error", err)
		complete = false
	} else {
		activity.Projects = projects
	}

	if complete && s.ttl > 0 {
		s.cache.SetDefault(dashboardCacheKey, activity)
	}
	return activity
}

// Invalidate drops the cached summary.
func (s *DashboardService) Invalidate() {
	s.cache.Delete(dashboardCacheKey)
}

func (s *DashboardService) stats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error
	if stats.Total, err = s.projects.CountProjects(ctx); err != nil {
		return stats, err
	}
	if stats.Approved, err = s.projects.CountProjectsByDecision(ctx, models.DecisionApproved); err != nil {
		return stats, err
	}
	if stats.Pending, err = s.projects.CountProjectsByDecision(ctx, models.DecisionPending); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *DashboardService) withTitles(ctx context.Context, comments []models.Comment) []models.DashboardComment {
	titles := make(map[string]string)
	for _, id := range projectIDs(comments) {
		project, err := s.projects.GetProjectByID(ctx, id.Hex())
		if err != nil {
			continue
		}
		titles[id.Hex()] = project.Title
	}

	out := make([]models.DashboardComment, 0, len(comments))
	for _, c := range comments {
		out = append(out, models.DashboardComment{Comment: c, ProjectTitle: titles[c.ProjectID.Hex()]})
	}
	return out
}

func projectIDs(comments []models.Comment) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(comments))
	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.ProjectID]; ok {
			continue
		}
		seen[c.ProjectID] = struct{}{}
		ids = append(ids, c.ProjectID)
	}
	return ids
}
