package notification

import (
	"context"

	"payflow/internal/models"
)

// Publisher pushes a notification payload to a user's live channel.
// Publishing is best-effort: subscribers that are not connected miss
// the message, and the durable store remains the source of truth.
type Publisher interface {
	Publish(ctx context.Context, userID uint, payload interface{}) error
}

// Service dispatches notifications: durable rows pulled by clients,
// plus an optional live push on the user's channel.
type Service interface {
	// Notify records a notification for the user. It never returns an
	// error: delivery problems are logged and swallowed so that a
	// failed notification cannot abort the state change it reports.
	Notify(ctx context.Context, userID uint, title, message, severity string)

	ListUnannounced(ctx context.Context, userID uint) ([]models.Notification, error)
	MarkAnnounced(ctx context.Context, id, callerID uint) error
	MarkRead(ctx context.Context, id, callerID uint) error
}
