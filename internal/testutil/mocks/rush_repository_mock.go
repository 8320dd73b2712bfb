package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/idiomoji/server/internal/models"
)

// MockRushRepository is a mock implementation of repository.RushRepository
type MockRushRepository struct {
	mock.Mock
}

func (m *MockRushRepository) InsertSession(ctx context.Context, session models.TimeAttackSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockRushRepository) GetSession(ctx context.Context, id string) (*models.TimeAttackSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeAttackSession), args.Error(1)
}

func (m *MockRushRepository) TopSessions(ctx context.Context, limit int) ([]models.TimeAttackSession, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeAttackSession), args.Error(1)
}

func (m *MockRushRepository) GetStats(ctx context.Context, uid string) (*models.TimeAttackStats, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeAttackStats), args.Error(1)
}

func (m *MockRushRepository) SaveStats(ctx context.Context, uid string, stats models.TimeAttackStats) error {
	args := m.Called(ctx, uid, stats)
	return args.Error(0)
}
