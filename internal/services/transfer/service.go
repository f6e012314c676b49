package transfer

import (
	"context"
	"errors"
	"fmt"

	"payflow/internal/models"
	"payflow/internal/repositories"

	"github.com/google/uuid"
)

type service struct {
	transfers repositories.TransferRepository
	users     UserDirectory
	engine    *Engine
	pool      *Pool
	metrics   MetricsCollector
}

// NewService creates the transfer service. The pool carries the
// detached engine runs; Shutdown the pool to drain them.
func NewService(
	transfers repositories.TransferRepository,
	users UserDirectory,
	engine *Engine,
	pool *Pool,
	metrics MetricsCollector,
) Service {
	if transfers == nil {
		panic("transfer repository is required")
	}
	if users == nil {
		panic("user directory is required")
	}
	if engine == nil {
		panic("engine is required")
	}
	if pool == nil {
		panic("pool is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		transfers: transfers,
		users:     users,
		engine:    engine,
		pool:      pool,
		metrics:   metrics,
	}
}

// CreateTransfer validates the request, persists the record in its
// initial state, and hands the run to the pool. It does not wait for
// settlement: the caller gets the pending record back immediately.
func (s *service) CreateTransfer(ctx context.Context, senderID, receiverID uint, amount float64) (*models.Transfer, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if senderID == receiverID {
		return nil, ErrSelfTransfer
	}
	if _, err := s.users.GetByID(receiverID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("resolve receiver: %w", err)
	}

	t := &models.Transfer{
		Reference:      uuid.NewString(),
		Amount:         amount,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Status:         models.TransferStatusPending,
		SenderStatus:   models.SenderStatusPending,
		ReceiverStatus: models.ReceiverStatusPending,
	}
	if err := s.transfers.Create(t); err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}

	// The run is detached from the request: it keeps going after this
	// call returns and must not inherit the request's cancellation.
	id := t.ID
	s.pool.Submit(func() {
		s.engine.Run(context.Background(), id)
	})
	s.metrics.RecordQueueDepth(s.pool.Depth())

	return t, nil
}

func (s *service) GetTransfer(ctx context.Context, id uint) (*models.Transfer, error) {
	t, err := s.transfers.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransferNotFound) {
			return nil, ErrTransferNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]models.Transfer, error) {
	return s.transfers.ListByParticipant(userID)
}
