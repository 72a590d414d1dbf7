package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anonto42/review-portal/backend/internal/metrics"
	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/repositories"
)

// maxDecisionAttempts bounds the read/compute/write loop of SetDecision.
const maxDecisionAttempts = 3

// ProjectService implements the project lifecycle: catalog, version log,
// decision toggle, reactions and final selection.
type ProjectService struct {
	projects      repositories.ProjectRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository
	notifier      Notifier
	metrics       *metrics.Metrics
	logger        *slog.Logger
	now           func() time.Time
	changed       func()
}

func NewProjectService(
	projects repositories.ProjectRepository,
	comments repositories.CommentRepository,
	notifications repositories.NotificationRepository,
	notifier Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:      projects,
		comments:      comments,
		notifications: notifications,
		notifier:      notifier,
		metrics:       m,
		logger:        logger.With("service", "projects"),
		now:           func() time.Time { return time.Now().UTC() },
		changed:       func() {},
	}
}

// OnChange registers fn to run after every committed project mutation.
func (s *ProjectService) OnChange(fn func()) {
	s.changed = fn
}

// Create stores a new project with an empty version log.
func (s *ProjectService) Create(ctx context.Context, req models.CreateProjectRequest, logoURL string) (*models.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, models.NewValidationError("title", "is required")
	}
	client := strings.TrimSpace(req.Client)
	if client == "" {
		return nil, models.NewValidationError("client", "is required")
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       title,
		Client:      client,
		Description: strings.TrimSpace(req.Description),
		Status:      strings.TrimSpace(req.Status),
		DueDate:     dueDate,
		Logo:        logoURL,
		CreatedAt:   s.now(),
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	s.changed()
	s.logger.InfoContext(ctx, "project created", "project_id", project.ID.Hex())
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.ProjectDetail, error) {
	project, err := s.projects.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewProjectDetail(project), nil
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.GetProjects(ctx, 0)
}

// Delete removes the project and then everything that references it.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.changed()

	comments, err := s.comments.DeleteCommentsByProjectID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "cascade delete comments failed", "project_id", id, "error", err)
		return err
	}
	notifications, err := s.notifications.DeleteByProjectID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "cascade delete notifications failed", "project_id", id, "error", err)
		return err
	}

	s.logger.InfoContext(ctx, "project deleted", "project_id", id, "comments", comments, "notifications", notifications)
	return nil
}

// AppendVersion adds one version to the project's log. Content type and size
// are taken as given.
func (s *ProjectService) AppendVersion(ctx context.Context, id string, artifact models.Artifact) (*models.Project, error) {
	version := models.Version{
		URL:         artifact.URL,
		Name:        artifact.Name,
		ContentType: artifact.ContentType,
		CreatedAt:   s.now(),
	}
	project, err := s.projects.AppendVersion(ctx, id, version)
	if err != nil {
		return nil, err
	}
	s.metrics.VersionUploaded()

	if err := s.notify(ctx, project, models.CategoryComment, versionUploadedText(artifact.Name)); err != nil {
		return nil, err
	}
	return project, nil
}

// SetDecision toggles the decision: requesting the current decision resets
// it to Pending. The write is a compare-and-set against the decision that
// was read, retried when a concurrent toggle wins.
func (s *ProjectService) SetDecision(ctx context.Context, id string, requested models.Decision) (*models.Project, error) {
	if !requested.Requestable() {
		return nil, models.NewValidationError("decision", "must be Approved or Rejected")
	}

	for attempt := 1; attempt <= maxDecisionAttempts; attempt++ {
		current, err := s.projects.GetProjectByID(ctx, id)
		if err != nil {
			return nil, err
		}

		previous := current.CurrentDecision()
		next := models.NextDecision(previous, requested)

		project, err := s.projects.CompareAndSetDecision(ctx, id, previous, next)
		if errors.Is(err, models.ErrConflict) {
			s.metrics.DecisionConflict()
			s.logger.DebugContext(ctx, "decision changed concurrently", "project_id", id, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}

		resulting := project.CurrentDecision()
		s.metrics.DecisionChanged(resulting)
		s.logger.InfoContext(ctx, "decision changed", "project_id", id, "from", previous, "to", resulting)

		if err := s.notify(ctx, project, models.CategoryDecision, decisionText(resulting)); err != nil {
			return nil, err
		}
		return project, nil
	}

	return nil, fmt.Errorf("set decision on %s: gave up after %d concurrent updates: %w", id, maxDecisionAttempts, models.ErrStorage)
}

// AddReaction counts one reaction. Every call counts, there is no per-actor limit.
func (s *ProjectService) AddReaction(ctx context.Context, id string, rawKind string) (*models.Project, error) {
	kind, err := models.ParseReactionKind(rawKind)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.IncrementReaction(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	if err := s.notify(ctx, project, models.CategoryReaction, reactionText(kind)); err != nil {
		return nil, err
	}
	return project, nil
}

// SelectFinalVersion marks url as the delivered artifact. Choosing a final
// version approves the project whatever its decision was.
func (s *ProjectService) SelectFinalVersion(ctx context.Context, id string, url string) (*models.Project, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, models.NewValidationError("url", "is required")
	}

	project, err := s.projects.SelectFinalVersion(ctx, id, url)
	if err != nil {
		return nil, err
	}
	s.metrics.DecisionChanged(models.DecisionApproved)

	if err := s.notify(ctx, project, models.CategoryDecision, finalSelectedText); err != nil {
		return nil, err
	}
	return project, nil
}

// notify emits after a mutation has been committed. A failure here is
// reported to the caller; the mutation itself stays.
func (s *ProjectService) notify(ctx context.Context, project *models.Project, category models.NotificationCategory, text string) error {
	s.changed()
	projectID := project.ID
	if _, err := s.notifier.Emit(ctx, category, &projectID, text); err != nil {
		s.logger.ErrorContext(ctx, "notification write failed", "project_id", projectID.Hex(), "category", category, "error", err)
		return fmt.Errorf("notify %s: %w", category, err)
	}
	return nil
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, models.NewValidationError("due_date", "must be YYYY-MM-DD or RFC 3339")
}
