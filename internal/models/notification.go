package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationCategory groups notifications by the kind of event that caused them.
type NotificationCategory string

const (
	CategoryReaction NotificationCategory = "reaction"
	CategoryDecision NotificationCategory = "decision"
	CategoryComment  NotificationCategory = "comment"
)

// Notification represents an admin feed entry (MongoDB). It is written once
// per causal event; only Read changes afterwards.
type Notification struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Text      string               `json:"text" bson:"text"`
	Category  NotificationCategory `json:"category" bson:"category"`
	ProjectID *primitive.ObjectID  `json:"project_id,omitempty" bson:"project_id,omitempty"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	Read      bool                 `json:"read" bson:"read"`
	ForAdmin  bool                 `json:"for_admin" bson:"for_admin"`
}
