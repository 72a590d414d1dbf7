package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audience tags a comment as team-only or client-visible.
type Audience string

const (
	AudienceInternal Audience = "internal"
	AudienceExternal Audience = "external"
)

// Valid reports whether a is a known audience.
func (a Audience) Valid() bool {
	return a == AudienceInternal || a == AudienceExternal
}

// Comment represents a message on a project (MongoDB)
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProjectID primitive.ObjectID `json:"project_id" bson:"project_id"`
	Author    string             `json:"author" bson:"author"`
	Text      string             `json:"text" bson:"text"`
	Audience  Audience           `json:"audience" bson:"audience"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for posting a comment
type CreateCommentRequest struct {
	ProjectID string   `json:"project_id" validate:"required"`
	Author    string   `json:"author" validate:"required,max=100"`
	Text      string   `json:"text" validate:"required,max=2000"`
	Audience  Audience `json:"audience" validate:"omitempty,oneof=internal external"`
}
