package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/idiomoji/server/internal/models"
)

// MockPlayerRepository is a mock implementation of repository.PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Get(ctx context.Context, uid string) (*models.PlayerStats, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStats), args.Error(1)
}

func (m *MockPlayerRepository) Init(ctx context.Context, uid, name, email, photoURL string) (*models.PlayerStats, error) {
	args := m.Called(ctx, uid, name, email, photoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStats), args.Error(1)
}

func (m *MockPlayerRepository) Save(ctx context.Context, stats models.PlayerStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockPlayerRepository) List(ctx context.Context) ([]models.PlayerStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerStats), args.Error(1)
}
