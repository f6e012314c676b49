package models

import (
	"time"
)

// Notification severities
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Notification is a per-user message written by the transfer engine (or
// any component reporting a state change). IsAnnounced tracks one-time
// delivery through the pull API; IsRead tracks user acknowledgement.
// The two flags are independent.
type Notification struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Severity    string    `gorm:"size:20;not null" json:"severity"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	IsAnnounced bool      `gorm:"default:false" json:"is_announced"`
	CreatedAt   time.Time `json:"created_at"`
}
