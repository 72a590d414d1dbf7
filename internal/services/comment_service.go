package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/repositories"
)

const (
	maxCommentAuthorLen = 100
	maxCommentTextLen   = 2000
)

// CommentService runs the project discussion thread.
type CommentService struct {
	comments repositories.CommentRepository
	projects repositories.ProjectRepository
	notifier Notifier
	logger   *slog.Logger
	changed  func()
}

func NewCommentService(comments repositories.CommentRepository, projects repositories.ProjectRepository, notifier Notifier, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		projects: projects,
		notifier: notifier,
		logger:   logger.With("service", "comments"),
		changed:  func() {},
	}
}

// OnChange registers fn to run after every stored comment.
func (s *CommentService) OnChange(fn func()) {
	s.changed = fn
}

// Post stores a comment. Only client-visible comments notify the admins.
func (s *CommentService) Post(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	author := strings.TrimSpace(req.Author)
	text := strings.TrimSpace(req.Text)
	audience := req.Audience
	if audience == "" {
		audience = models.AudienceExternal
	}

	switch {
	case strings.TrimSpace(req.ProjectID) == "":
		return nil, models.NewValidationError("project_id", "is required")
	case author == "":
		return nil, models.NewValidationError("author", "is required")
	case utf8.RuneCountInString(author) > maxCommentAuthorLen:
		return nil, models.NewValidationError("author", "must be at most 100 characters")
	case text == "":
		return nil, models.NewValidationError("text", "is required")
	case utf8.RuneCountInString(text) > maxCommentTextLen:
		return nil, models.NewValidationError("text", "must be at most 2000 characters")
	case !audience.Valid():
		return nil, models.NewValidationError("audience", "must be internal or external")
	}

	project, err := s.projects.GetProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ProjectID: project.ID,
		Author:    author,
		Text:      text,
		Audience:  audience,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.changed()

	if audience == models.AudienceExternal {
		projectID := project.ID
		if _, err := s.notifier.Emit(ctx, models.CategoryComment, &projectID, commentText(author, project.Title)); err != nil {
			s.logger.ErrorContext(ctx, "notification write failed", "project_id", projectID.Hex(), "error", err)
			return nil, err
		}
	}
	return comment, nil
}

// List returns the whole thread oldest first, internal comments included.
// Any failure yields an empty thread.
func (s *CommentService) List(ctx context.Context, projectID string) []models.Comment {
	comments, err := s.comments.GetCommentsByProjectID(ctx, projectID)
	if err != nil {
		s.logger.WarnContext(ctx, "list comments failed", "project_id", projectID, "error", err)
		return []models.Comment{}
	}
	return comments
}
