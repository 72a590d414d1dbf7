package models

import "time"

// Client is an agency customer (PostgreSQL)
type Client struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:200;index;not null"`
	Email        string    `json:"email" gorm:"size:255;not null"`
	Company      string    `json:"company,omitempty" gorm:"size:200"`
	Phone        string    `json:"phone,omitempty" gorm:"size:50"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`
}

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company,omitempty" validate:"omitempty,max=200"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=50"`
}
