package user

import (
	"payflow/internal/models"
	"payflow/internal/repositories"
)

// Service resolves user accounts for the transfer and dashboard
// surfaces.
type Service interface {
	GetByID(id uint) (*models.User, error)
	// ListRecipients returns every user except the caller, for the
	// transfer recipient picker.
	ListRecipients(callerID uint) ([]models.User, error)
}

type service struct {
	repo repositories.UserRepository
}

// NewService creates a new user service.
func NewService(repo repositories.UserRepository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *service) ListRecipients(callerID uint) ([]models.User, error) {
	return s.repo.ListOthers(callerID)
}
