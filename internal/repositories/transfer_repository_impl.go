package repositories

import (
	"errors"

	"payflow/internal/models"

	"gorm.io/gorm"
)

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new instance of TransferRepository.
func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(t *models.Transfer) error {
	if err := r.db.Create(t).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *transferRepository) GetByID(id uint) (*models.Transfer, error) {
	var t models.Transfer
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransferNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &t, nil
}

func (r *transferRepository) ListByParticipant(userID uint) ([]models.Transfer, error) {
	var transfers []models.Transfer
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&transfers).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return transfers, nil
}

// terminal statuses never receive further writes
var terminalStatuses = []string{models.TransferStatusCompleted, models.TransferStatusFailed}

func (r *transferRepository) MarkSent(id uint) error {
	return r.update(id, map[string]interface{}{
		"sender_status": models.SenderStatusSent,
	})
}

func (r *transferRepository) Complete(id uint) error {
	return r.update(id, map[string]interface{}{
		"status":          models.TransferStatusCompleted,
		"receiver_status": models.ReceiverStatusReceived,
	})
}

func (r *transferRepository) Fail(id uint) error {
	return r.update(id, map[string]interface{}{
		"status":          models.TransferStatusFailed,
		"receiver_status": models.ReceiverStatusFailed,
	})
}

func (r *transferRepository) update(id uint, fields map[string]interface{}) error {
	result := r.db.Model(&models.Transfer{}).
		Where("id = ? AND status NOT IN ?", id, terminalStatuses).
		Updates(fields)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrTransferNotFound
	}
	return nil
}
