package repositories

import "payflow/internal/models"

// UserRepository resolves and stores user accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListOthers(userID uint) ([]models.User, error)
	IncrementTokenVersion(userID uint) error
}
