package models_test

import (
	"errors"
	"testing"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProject_LegacyView(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"files": bson.A{
			"https://cdn.example.com/old.png",
			bson.M{"url": "https://cdn.example.com/contract.pdf", "nombre": "contract.pdf"},
			bson.M{"url": "https://cdn.example.com/brief.pdf", "name": "brief.pdf"},
			bson.M{"size": 12},
			42,
		},
	})
	require.NoError(t, err)

	var p models.Project
	require.NoError(t, bson.Unmarshal(raw, &p))

	assert.Equal(t, []models.LegacyFile{
		{URL: "https://cdn.example.com/old.png"},
		{URL: "https://cdn.example.com/contract.pdf", Name: "contract.pdf"},
		{URL: "https://cdn.example.com/brief.pdf", Name: "brief.pdf"},
	}, p.LegacyView())
}

func TestProject_CurrentDecisionDefaultsToPending(t *testing.T) {
	p := models.Project{}
	assert.Equal(t, models.DecisionPending, p.CurrentDecision())

	p.Decision = models.DecisionRejected
	assert.Equal(t, models.DecisionRejected, p.CurrentDecision())
}

func TestParseReactionKind(t *testing.T) {
	kind, err := models.ParseReactionKind(" Fire ")
	require.NoError(t, err)
	assert.Equal(t, models.ReactionFire, kind)

	_, err = models.ParseReactionKind("dislike")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "kind", vErr.Field)
}

func TestReactions_Count(t *testing.T) {
	r := models.Reactions{Like: 3, Love: 1, Fire: 2}
	assert.Equal(t, 3, r.Count(models.ReactionLike))
	assert.Equal(t, 1, r.Count(models.ReactionLove))
	assert.Equal(t, 2, r.Count(models.ReactionFire))
	assert.Equal(t, 6, r.Total())
}
