package repositories

import (
	"errors"

	"payflow/internal/models"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *models.Notification) error {
	if err := r.db.Create(n).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *notificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &n, nil
}

func (r *notificationRepository) ListUnannounced(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("user_id = ? AND is_announced = ?", userID, false).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return notifications, nil
}

func (r *notificationRepository) ListRecent(userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAnnounced(id uint) error {
	return r.setFlag(id, "is_announced")
}

func (r *notificationRepository) MarkRead(id uint) error {
	return r.setFlag(id, "is_read")
}

func (r *notificationRepository) setFlag(id uint, column string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		UpdateColumn(column, true)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
