package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/idiomoji/server/internal/models"
)

// MockDailyGameRepository is a mock implementation of repository.DailyGameRepository
type MockDailyGameRepository struct {
	mock.Mock
}

func (m *MockDailyGameRepository) Get(ctx context.Context, uid, date string) (*models.DailyGame, error) {
	args := m.Called(ctx, uid, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyGame), args.Error(1)
}

func (m *MockDailyGameRepository) Save(ctx context.Context, dg models.DailyGame) error {
	args := m.Called(ctx, dg)
	return args.Error(0)
}
