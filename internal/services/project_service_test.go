package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProjectService(store *memoryStore) *services.ProjectService {
	logger := discardLogger()
	notifications := services.NewNotificationService(store, nil, logger)
	return services.NewProjectService(store, store, store, notifications, nil, logger)
}

func texts(ns []models.Notification) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Text)
	}
	return out
}

const (
	approvedText  = "✅ The client APPROVED the project! 🎉"
	rejectedText  = "❌ The client requested CHANGES (Rejected)."
	cancelledText = "↩️ The decision was cancelled. The project is back to Pending."
)

func TestProjectService_SetDecisionTransitions(t *testing.T) {
	tests := []struct {
		current   models.Decision
		requested models.Decision
		want      models.Decision
		wantText  string
	}{
		{models.DecisionPending, models.DecisionApproved, models.DecisionApproved, approvedText},
		{models.DecisionPending, models.DecisionRejected, models.DecisionRejected, rejectedText},
		{models.DecisionApproved, models.DecisionApproved, models.DecisionPending, cancelledText},
		{models.DecisionApproved, models.DecisionRejected, models.DecisionRejected, rejectedText},
		{models.DecisionRejected, models.DecisionRejected, models.DecisionPending, cancelledText},
		{models.DecisionRejected, models.DecisionApproved, models.DecisionApproved, approvedText},
	}

	for _, tt := range tests {
		t.Run(string(tt.current)+"->"+string(tt.requested), func(t *testing.T) {
			store := newMemoryStore()
			svc := newProjectService(store)
			p := store.seed("Brochure")
			store.projects[p.ID].Decision = tt.current

			got, err := svc.SetDecision(context.Background(), p.ID.Hex(), tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Decision)

			notes := store.notificationsFor(p.ID)
			require.Len(t, notes, 1)
			assert.Equal(t, tt.wantText, notes[0].Text)
			assert.Equal(t, models.CategoryDecision, notes[0].Category)
			assert.True(t, notes[0].ForAdmin)
			assert.False(t, notes[0].Read)
		})
	}
}

func TestProjectService_SetDecisionTwiceRestoresState(t *testing.T) {
	for _, start := range []models.Decision{models.DecisionPending, models.DecisionApproved, models.DecisionRejected} {
		for _, requested := range []models.Decision{models.DecisionApproved, models.DecisionRejected} {
			store := newMemoryStore()
			svc := newProjectService(store)
			p := store.seed("Logo")
			store.projects[p.ID].Decision = start

			_, err := svc.SetDecision(context.Background(), p.ID.Hex(), requested)
			require.NoError(t, err)
			second, err := svc.SetDecision(context.Background(), p.ID.Hex(), requested)
			require.NoError(t, err)

			// Two identical requests land on Pending, unless the project
			// already held that decision before the first one.
			if start == requested {
				assert.Equal(t, requested, second.Decision, "start=%s requested=%s", start, requested)
			} else {
				assert.Equal(t, models.DecisionPending, second.Decision, "start=%s requested=%s", start, requested)
			}
			assert.Len(t, store.notificationsFor(p.ID), 2)
		}
	}
}

func TestProjectService_CancelThenReapprove(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	ctx := context.Background()
	p := store.seed("Website")

	for _, want := range []models.Decision{models.DecisionApproved, models.DecisionPending, models.DecisionApproved} {
		got, err := svc.SetDecision(ctx, p.ID.Hex(), models.DecisionApproved)
		require.NoError(t, err)
		assert.Equal(t, want, got.Decision)
	}

	assert.Equal(t, []string{approvedText, cancelledText, approvedText}, texts(store.notificationsFor(p.ID)))
}

func TestProjectService_SetDecisionRejectsPending(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	p := store.seed("Poster")

	_, err := svc.SetDecision(context.Background(), p.ID.Hex(), models.DecisionPending)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.SetDecision(context.Background(), p.ID.Hex(), models.Decision("Maybe"))
	assert.True(t, errors.Is(err, models.ErrValidation))

	assert.Equal(t, models.DecisionPending, store.project(p.ID).Decision)
	assert.Empty(t, store.notificationsFor(p.ID))
}

func TestProjectService_SetDecisionNotFound(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)

	_, err := svc.SetDecision(context.Background(), primitive.NewObjectID().Hex(), models.DecisionApproved)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, store.notifications)
}

func TestProjectService_SetDecisionRetriesLostRace(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	p := store.seed("Menu")

	// Another client approves between our read and our write.
	raced := false
	store.beforeCAS = func(stored *models.Project) {
		if !raced {
			raced = true
			stored.Decision = models.DecisionApproved
		}
	}

	got, err := svc.SetDecision(context.Background(), p.ID.Hex(), models.DecisionApproved)
	require.NoError(t, err)

	// The retry sees Approved, so approving again toggles to Pending.
	assert.Equal(t, models.DecisionPending, got.Decision)
	assert.Equal(t, []string{cancelledText}, texts(store.notificationsFor(p.ID)))
}

func TestProjectService_SetDecisionPersistentConflict(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	p := store.seed("Menu")

	store.beforeCAS = func(stored *models.Project) {
		if stored.CurrentDecision() == models.DecisionRejected {
			stored.Decision = models.DecisionPending
		} else {
			stored.Decision = models.DecisionRejected
		}
	}

	_, err := svc.SetDecision(context.Background(), p.ID.Hex(), models.DecisionApproved)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorage)
	assert.Empty(t, store.notificationsFor(p.ID))
}

func TestProjectService_SelectFinalVersionOverridesDecision(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	ctx := context.Background()
	p := store.seed("Flyer")

	_, err := svc.SetDecision(ctx, p.ID.Hex(), models.DecisionRejected)
	require.NoError(t, err)

	got, err := svc.SelectFinalVersion(ctx, p.ID.Hex(), "https://cdn.example.com/flyer-v3.pdf")
	require.NoError(t, err)
	assert.Equal(t, models.DecisionApproved, got.Decision)
	assert.Equal(t, "https://cdn.example.com/flyer-v3.pdf", got.FinalFile)

	notes := store.notificationsFor(p.ID)
	require.Len(t, notes, 2)
	assert.Equal(t, "🎉 Final version selected", notes[1].Text)
	assert.Equal(t, models.CategoryDecision, notes[1].Category)
}

func TestProjectService_SelectFinalVersionRequiresURL(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	p := store.seed("Flyer")

	_, err := svc.SelectFinalVersion(context.Background(), p.ID.Hex(), "  ")

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "url", vErr.Field)
	assert.Empty(t, store.project(p.ID).FinalFile)
	assert.Empty(t, store.notificationsFor(p.ID))
}

func TestProjectService_AddReaction(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	ctx := context.Background()
	p := store.seed("Banner")

	for i := 0; i < 2; i++ {
		_, err := svc.AddReaction(ctx, p.ID.Hex(), "like")
		require.NoError(t, err)
	}
	got, err := svc.AddReaction(ctx, p.ID.Hex(), "FIRE")
	require.NoError(t, err)

	assert.Equal(t, models.Reactions{Like: 2, Fire: 1}, got.Reactions)
	assert.Equal(t, []string{
		"👍 New reaction received",
		"👍 New reaction received",
		"🔥 New reaction received",
	}, texts(store.notificationsFor(p.ID)))
}

func TestProjectService_AddReactionUnknownKind(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	p := store.seed("Banner")

	_, err := svc.AddReaction(context.Background(), p.ID.Hex(), "clap")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Zero(t, store.project(p.ID).Reactions.Total())
	assert.Empty(t, store.notificationsFor(p.ID))
}

func TestProjectService_AppendVersion(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	ctx := context.Background()
	p := store.seed("Packaging")

	names := []string{"box.png", "box.png", "label.pdf"}
	for i, name := range names {
		got, err := svc.AppendVersion(ctx, p.ID.Hex(), models.Artifact{
			URL:         "https://cdn.example.com/" + name,
			Name:        name,
			ContentType: "application/octet-stream",
		})
		require.NoError(t, err)
		require.Len(t, got.Versions, i+1)
		assert.Equal(t, name, got.Versions[i].Name)
		assert.False(t, got.Versions[i].CreatedAt.IsZero())
	}

	notes := store.notificationsFor(p.ID)
	require.Len(t, notes, 3)
	assert.Equal(t, `📂 New file uploaded: "label.pdf"`, notes[2].Text)
	assert.Equal(t, models.CategoryComment, notes[2].Category)

	detail, err := svc.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, detail.VersionGroups, 2)
}

func TestProjectService_AppendVersionNotFound(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)

	_, err := svc.AppendVersion(context.Background(), primitive.NewObjectID().Hex(), models.Artifact{URL: "u", Name: "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, store.notifications)
}

func TestProjectService_NotificationFailureSurfaces(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	p := store.seed("Signage")
	store.notifyErr = errors.Join(models.ErrStorage, errors.New("connection reset"))

	_, err := svc.AddReaction(context.Background(), p.ID.Hex(), "love")
	assert.ErrorIs(t, err, models.ErrStorage)

	// The reaction itself was committed before the notification failed.
	assert.Equal(t, 1, store.project(p.ID).Reactions.Love)
}

func TestProjectService_DeleteCascades(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	ctx := context.Background()
	keep := store.seed("Keep")
	drop := store.seed("Drop")

	for _, p := range []*models.Project{keep, drop} {
		_, err := svc.AddReaction(ctx, p.ID.Hex(), "like")
		require.NoError(t, err)
		require.NoError(t, store.CreateComment(ctx, &models.Comment{ProjectID: p.ID, Author: "Ana", Text: "hi", Audience: models.AudienceExternal}))
	}

	require.NoError(t, svc.Delete(ctx, drop.ID.Hex()))

	_, err := svc.Get(ctx, drop.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, store.notificationsFor(drop.ID))
	left, _ := store.GetCommentsByProjectID(ctx, drop.ID.Hex())
	assert.Empty(t, left)

	assert.Len(t, store.notificationsFor(keep.ID), 1)
	kept, _ := store.GetCommentsByProjectID(ctx, keep.ID.Hex())
	assert.Len(t, kept, 1)

	assert.ErrorIs(t, svc.Delete(ctx, drop.ID.Hex()), models.ErrNotFound)
}

func TestProjectService_Create(t *testing.T) {
	store := newMemoryStore()
	svc := newProjectService(store)
	ctx := context.Background()

	p, err := svc.Create(ctx, models.CreateProjectRequest{
		Title:   "  Spring campaign ",
		Client:  "Acme",
		DueDate: "2024-06-30",
	}, "https://cdn.example.com/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "Spring campaign", p.Title)
	assert.Equal(t, models.DefaultProjectStatus, p.Status)
	assert.Equal(t, models.DecisionPending, p.Decision)
	assert.Empty(t, p.Versions)
	require.NotNil(t, p.DueDate)
	assert.Equal(t, 30, p.DueDate.Day())

	_, err = svc.Create(ctx, models.CreateProjectRequest{Title: "x", Client: " "}, "")
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "client", vErr.Field)

	_, err = svc.Create(ctx, models.CreateProjectRequest{Title: "x", Client: "y", DueDate: "next week"}, "")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "due_date", vErr.Field)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
