package models

import (
	"time"
)

// Overall transfer statuses
const (
	TransferStatusPending    = "pending"
	TransferStatusProcessing = "processing"
	TransferStatusCompleted  = "completed"
	TransferStatusFailed     = "failed"
)

// Sender-view statuses
const (
	SenderStatusPending = "pending"
	SenderStatusSent    = "sent"
	SenderStatusFailed  = "failed"
)

// Receiver-view statuses
const (
	ReceiverStatusPending  = "pending"
	ReceiverStatusReceived = "received"
	ReceiverStatusFailed   = "failed"
)

// Transfer is a directed money movement between two users. A row is
// created in the pending state and mutated only by its engine run; rows
// are never deleted.
type Transfer struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Reference      string    `gorm:"uniqueIndex;not null" json:"reference"`
	Amount         float64   `gorm:"not null" json:"amount"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID     uint      `gorm:"not null;index" json:"receiver_id"`
	Status         string    `gorm:"not null;default:'pending'" json:"status"`
	SenderStatus   string    `gorm:"not null;default:'pending'" json:"sender_status"`
	ReceiverStatus string    `gorm:"not null;default:'pending'" json:"receiver_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Terminal reports whether the overall status admits no further transitions.
func (t *Transfer) Terminal() bool {
	return t.Status == TransferStatusCompleted || t.Status == TransferStatusFailed
}
