package models

import "strings"

// ReactionKind is one of the reactions a viewer can leave on a project.
type ReactionKind string

const (
	ReactionLike ReactionKind = "like"
	ReactionLove ReactionKind = "love"
	ReactionFire ReactionKind = "fire"
)

// ParseReactionKind accepts only the known kinds.
func ParseReactionKind(s string) (ReactionKind, error) {
	switch k := ReactionKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ReactionLike, ReactionLove, ReactionFire:
		return k, nil
	}
	return "", NewValidationError("kind", "must be one of like, love, fire")
}

// Emoji returns the icon used in reaction notifications.
func (k ReactionKind) Emoji() string {
	switch k {
	case ReactionLike:
		return "👍"
	case ReactionLove:
		return "❤️"
	case ReactionFire:
		return "🔥"
	}
	return "👀"
}

// Reactions holds the per-kind counters embedded in a project document.
type Reactions struct {
	Like int `json:"like" bson:"like"`
	Love int `json:"love" bson:"love"`
	Fire int `json:"fire" bson:"fire"`
}

// Count returns the counter for kind.
func (r Reactions) Count(kind ReactionKind) int {
	switch kind {
	case ReactionLike:
		return r.Like
	case ReactionLove:
		return r.Love
	case ReactionFire:
		return r.Fire
	}
	return 0
}

// Total sums every counter.
func (r Reactions) Total() int {
	return r.Like + r.Love + r.Fire
}

// CreateReactionRequest defines the request body for reacting to a project
type CreateReactionRequest struct {
	Kind string `json:"kind" validate:"required"`
}
