package transfer

import (
	"context"

	"payflow/internal/models"
)

// UserDirectory resolves user ids to accounts, for display labels and
// receiver validation.
type UserDirectory interface {
	GetByID(id uint) (*models.User, error)
}

// Dispatcher delivers notifications to users. Implementations must not
// fail the caller: delivery problems are their own to log and swallow.
type Dispatcher interface {
	Notify(ctx context.Context, userID uint, title, message, severity string)
}

// Service exposes the transfer boundary operations. Creation returns
// as soon as the record is persisted; settlement happens on a
// background worker.
type Service interface {
	CreateTransfer(ctx context.Context, senderID, receiverID uint, amount float64) (*models.Transfer, error)
	GetTransfer(ctx context.Context, id uint) (*models.Transfer, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Transfer, error)
}
