package notification

import (
	"context"
	"errors"
	"testing"

	"payflow/internal/models"
	"payflow/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Create(n *models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockRepo) GetByID(id uint) (*models.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockRepo) ListUnannounced(userID uint) ([]models.Notification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockRepo) ListRecent(userID uint, limit int) ([]models.Notification, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockRepo) MarkAnnounced(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRepo) MarkRead(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, userID uint, payload interface{}) error {
	args := m.Called(ctx, userID, payload)
	return args.Error(0)
}

func TestNotify_PersistsAndPublishes(t *testing.T) {
	repo := new(MockRepo)
	pub := new(MockPublisher)
	svc := NewService(repo, pub)

	repo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 7 &&
			n.Title == "Money Sent" &&
			n.Severity == models.SeverityWarning &&
			!n.IsRead && !n.IsAnnounced
	})).Return(nil)
	pub.On("Publish", mock.Anything, uint(7), mock.Anything).Return(nil)

	svc.Notify(context.Background(), 7, "Money Sent", "$50.00 has been sent", models.SeverityWarning)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestNotify_StoreFailureIsSwallowed(t *testing.T) {
	repo := new(MockRepo)
	pub := new(MockPublisher)
	svc := NewService(repo, pub)

	repo.On("Create", mock.Anything).Return(repositories.ErrDatabaseOperation)

	// Must not panic and must not publish a row that was never stored.
	svc.Notify(context.Background(), 7, "Money Sent", "msg", models.SeverityInfo)

	repo.AssertExpectations(t)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotify_PublishFailureIsSwallowed(t *testing.T) {
	repo := new(MockRepo)
	pub := new(MockPublisher)
	svc := NewService(repo, pub)

	repo.On("Create", mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, uint(7), mock.Anything).Return(errors.New("redis down"))

	svc.Notify(context.Background(), 7, "Money Sent", "msg", models.SeverityInfo)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestNotify_WithoutPublisher(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, nil)

	repo.On("Create", mock.Anything).Return(nil)

	svc.Notify(context.Background(), 7, "Money Sent", "msg", models.SeverityInfo)
	repo.AssertExpectations(t)
}

func TestMarkRead_Authorization(t *testing.T) {
	tests := []struct {
		name     string
		callerID uint
		wantErr  error
	}{
		{"owner may mark read", 7, nil},
		{"non-owner is rejected", 8, ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			svc := NewService(repo, nil)

			owned := &models.Notification{ID: 3, UserID: 7}
			repo.On("GetByID", uint(3)).Return(owned, nil)
			if tt.wantErr == nil {
				repo.On("MarkRead", uint(3)).Return(nil)
			}

			err := svc.MarkRead(context.Background(), 3, tt.callerID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				// The flag must stay untouched on a rejection.
				repo.AssertNotCalled(t, "MarkRead", mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestMarkAnnounced_NonOwnerRejected(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, nil)

	repo.On("GetByID", uint(5)).Return(&models.Notification{ID: 5, UserID: 1}, nil)

	err := svc.MarkAnnounced(context.Background(), 5, 2)

	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "MarkAnnounced", mock.Anything)
}

func TestMarkAnnounced_MissingNotification(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, nil)

	repo.On("GetByID", uint(9)).Return(nil, repositories.ErrNotificationNotFound)

	err := svc.MarkAnnounced(context.Background(), 9, 2)
	assert.ErrorIs(t, err, repositories.ErrNotificationNotFound)
}

func TestListUnannounced(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, nil)

	expected := []models.Notification{
		{ID: 2, UserID: 7, Title: "Money Sent"},
		{ID: 1, UserID: 7, Title: "Transaction Started"},
	}
	repo.On("ListUnannounced", uint(7)).Return(expected, nil)

	got, err := svc.ListUnannounced(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
