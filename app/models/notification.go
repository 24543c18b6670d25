package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a row in the in-app notification feed, written by the
// database notification channel alongside the outgoing email.
type Notification struct {
	gorm.Model
	UserID  uint       `gorm:"not null;index" json:"user_id"`
	Type    string     `gorm:"size:100;not null" json:"type"`
	Message string     `gorm:"type:text;not null" json:"message"`
	Data    string     `gorm:"type:text" json:"data,omitempty"` // JSON payload
	ReadAt  *time.Time `json:"read_at,omitempty"`
}

func (Notification) TableName() string { return "notifications" }
