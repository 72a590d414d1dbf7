package models_test

import (
	"testing"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNextDecision(t *testing.T) {
	tests := []struct {
		current   models.Decision
		requested models.Decision
		want      models.Decision
	}{
		{models.DecisionPending, models.DecisionApproved, models.DecisionApproved},
		{models.DecisionPending, models.DecisionRejected, models.DecisionRejected},
		{models.DecisionApproved, models.DecisionApproved, models.DecisionPending},
		{models.DecisionApproved, models.DecisionRejected, models.DecisionRejected},
		{models.DecisionRejected, models.DecisionRejected, models.DecisionPending},
		{models.DecisionRejected, models.DecisionApproved, models.DecisionApproved},
	}
	for _, tt := range tests {
		t.Run(string(tt.current)+"_"+string(tt.requested), func(t *testing.T) {
			assert.Equal(t, tt.want, models.NextDecision(tt.current, tt.requested))
		})
	}
}

func TestNextDecision_AlwaysValid(t *testing.T) {
	state := models.DecisionPending
	sequence := []models.Decision{
		models.DecisionApproved, models.DecisionApproved, models.DecisionRejected,
		models.DecisionApproved, models.DecisionRejected, models.DecisionRejected,
		models.DecisionRejected, models.DecisionApproved,
	}
	for _, requested := range sequence {
		state = models.NextDecision(state, requested)
		assert.True(t, state.Valid(), "unexpected state %q", state)
	}
}

func TestDecision_Requestable(t *testing.T) {
	assert.True(t, models.DecisionApproved.Requestable())
	assert.True(t, models.DecisionRejected.Requestable())
	assert.False(t, models.DecisionPending.Requestable())
	assert.False(t, models.Decision("Maybe").Requestable())
	assert.False(t, models.Decision("Maybe").Valid())
}
