package models

import "time"

// ResourceCategory classifies files in the resource library.
type ResourceCategory string

const (
	ResourceBranding  ResourceCategory = "Branding"
	ResourceLegal     ResourceCategory = "Legal"
	ResourceTemplates ResourceCategory = "Templates"
	ResourceOther     ResourceCategory = "Other"
)

// Resource is a shared agency file such as a brand kit or a contract template (PostgreSQL)
type Resource struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"size:200;not null"`
	URL         string           `json:"url" gorm:"not null"`
	Category    ResourceCategory `json:"category" gorm:"size:30;default:'Other';index"`
	ContentType string           `json:"content_type" gorm:"size:100"`
	CreatedAt   time.Time        `json:"created_at"`
}

type CreateResourceRequest struct {
	Name     string           `form:"name" validate:"required,min=1,max=200"`
	Category ResourceCategory `form:"category" validate:"omitempty,oneof=Branding Legal Templates Other"`
}
