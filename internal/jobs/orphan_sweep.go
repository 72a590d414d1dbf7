package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anonto42/review-portal/backend/internal/metrics"
	"github.com/anonto42/review-portal/backend/internal/repositories"
	"github.com/go-co-op/gocron/v2"
)

// sweepTimeout bounds one run of the sweep.
const sweepTimeout = 2 * time.Minute

// OrphanSweeper deletes comments and notifications whose project no longer
// exists. Projects deleted through the API cascade already; this cleans up
// data left behind from before that.
type OrphanSweeper struct {
	projects      repositories.ProjectRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository
	metrics       *metrics.Metrics
	logger        *slog.Logger
	scheduler     gocron.Scheduler
}

func NewOrphanSweeper(
	projects repositories.ProjectRepository,
	comments repositories.CommentRepository,
	notifications repositories.NotificationRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) *OrphanSweeper {
	return &OrphanSweeper{
		projects:      projects,
		comments:      comments,
		notifications: notifications,
		metrics:       m,
		logger:        logger.With("job", "orphan_sweep"),
	}
}

// SweepResult counts the documents removed by one run.
type SweepResult struct {
	Comments      int64
	Notifications int64
}

// Sweep runs once. Nothing is deleted unless the live project list was read.
// Only documents created before the list was read are candidates, so a
// project created mid-sweep keeps its comments and notifications.
func (s *OrphanSweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	cutoff := time.Now().UTC()
	ids, err := s.projects.GetProjectIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("read live projects: %w", err)
	}

	if res.Comments, err = s.comments.DeleteOrphanedComments(ctx, ids, cutoff); err != nil {
		return res, err
	}
	s.metrics.Swept(repositories.CollectionComments, res.Comments)

	if res.Notifications, err = s.notifications.DeleteOrphaned(ctx, ids, cutoff); err != nil {
		return res, err
	}
	s.metrics.Swept(repositories.CollectionNotifications, res.Notifications)

	return res, nil
}

// Start schedules Sweep every interval. Runs never overlap.
func (s *OrphanSweeper) Start(interval time.Duration) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run),
		gocron.WithName("orphan_sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		scheduler.Shutdown()
		return fmt.Errorf("schedule orphan sweep: %w", err)
	}

	s.scheduler = scheduler
	scheduler.Start()
	s.logger.Info("orphan sweep scheduled", "interval", interval.String())
	return nil
}

// Stop waits for a running sweep to finish.
func (s *OrphanSweeper) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}

func (s *OrphanSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	res, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("orphan sweep failed", "error", err)
		return
	}
	s.logger.Info("orphan sweep finished", "comments", res.Comments, "notifications", res.Notifications)
}
