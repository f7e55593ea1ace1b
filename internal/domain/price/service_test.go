package price

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]Price, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Price), args.Error(1)
}

func (m *MockRepository) Find(ctx context.Context, id string) (*Price, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Price), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p Price) (*Price, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Price), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p Price) (*Price, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Price), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testService(repo Repository) *Service {
	svc := NewService(repo, slog.Default())
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := testService(mockRepo)

	fields := Fields{Brand: " Eliane ", Code: "AB12", Value: 45.9, Description: "piso"}

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p Price) bool {
		_, err := uuid.Parse(p.ID)
		return err == nil &&
			p.Brand == "Eliane" && // normalized
			p.UpdatedAt.Equal(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	})).Return(&Price{ID: "9b2e8a34-0000-4000-8000-000000000001", Code: "AB12"}, nil)

	created, err := svc.Create(context.Background(), fields)

	require.NoError(t, err)
	assert.Equal(t, "AB12", created.Code)
	mockRepo.AssertExpectations(t)
}

func TestService_CreateValidationSkipsRepo(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := testService(mockRepo)

	_, err := svc.Create(context.Background(), Fields{Code: "AB12", Value: 1, Description: "x"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "marca", vErr.Field)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_CreateDuplicatePropagates(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := testService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil, ErrDuplicateCode)

	_, err := svc.Create(context.Background(), Fields{Brand: "E", Code: "AB12", Value: 1, Description: "x"})
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestService_UpdateStampsServerTime(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := testService(mockRepo)

	want := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p Price) bool {
		return p.ID == "id-1" && p.UpdatedAt.Equal(want)
	})).Return(&Price{ID: "id-1", UpdatedAt: want}, nil)

	updated, err := svc.Update(context.Background(), "id-1", Fields{Brand: "E", Code: "AB12", Value: 1, Description: "x"})

	require.NoError(t, err)
	assert.Equal(t, want, updated.UpdatedAt)
	mockRepo.AssertExpectations(t)
}

func TestService_UpdateNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := testService(mockRepo)

	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil, ErrNotFound)

	_, err := svc.Update(context.Background(), "missing", Fields{Brand: "E", Code: "AB12", Value: 1, Description: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_List(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := testService(mockRepo)

	prices := []Price{{ID: "1"}, {ID: "2"}}
	mockRepo.On("List", mock.Anything).Return(prices, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prices, got)
}

func TestService_Delete(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := testService(mockRepo)

	mockRepo.On("Delete", mock.Anything, "id-1").Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), "id-1"))

	mockRepo.On("Delete", mock.Anything, "missing").Return(ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrNotFound)
}

func TestService_ListError(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := testService(mockRepo)

	mockRepo.On("List", mock.Anything).Return(nil, errors.New("connection lost"))

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}
