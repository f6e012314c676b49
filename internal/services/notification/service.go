package notification

import (
	"context"
	"log"

	"payflow/internal/models"
	"payflow/internal/repositories"
)

type service struct {
	repo      repositories.NotificationRepository
	publisher Publisher
}

// NewService creates a new notification service. The publisher is
// optional; without one only the durable pull path is active.
func NewService(repo repositories.NotificationRepository, publisher Publisher) Service {
	if repo == nil {
		panic("notification repository is required")
	}
	return &service{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *service) Notify(ctx context.Context, userID uint, title, message, severity string) {
	n := &models.Notification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Severity: severity,
	}

	if err := s.repo.Create(n); err != nil {
		log.Printf("Failed to store notification %q for user %d: %v", title, userID, err)
		return
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, userID, n); err != nil {
			log.Printf("Failed to publish notification %d for user %d: %v", n.ID, userID, err)
		}
	}
}

func (s *service) ListUnannounced(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.repo.ListUnannounced(userID)
}

func (s *service) MarkAnnounced(ctx context.Context, id, callerID uint) error {
	if err := s.authorize(id, callerID); err != nil {
		return err
	}
	return s.repo.MarkAnnounced(id)
}

func (s *service) MarkRead(ctx context.Context, id, callerID uint) error {
	if err := s.authorize(id, callerID); err != nil {
		return err
	}
	return s.repo.MarkRead(id)
}

func (s *service) authorize(id, callerID uint) error {
	n, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if n.UserID != callerID {
		return ErrNotOwner
	}
	return nil
}
