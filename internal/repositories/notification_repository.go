package repositories

import "payflow/internal/models"

// NotificationRepository stores per-user notifications. Rows are never
// deleted; the read/announced flags are flipped independently.
type NotificationRepository interface {
	Create(n *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	ListUnannounced(userID uint) ([]models.Notification, error)
	ListRecent(userID uint, limit int) ([]models.Notification, error)
	MarkAnnounced(id uint) error
	MarkRead(id uint) error
}
