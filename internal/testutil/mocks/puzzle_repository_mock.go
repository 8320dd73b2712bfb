package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/idiomoji/server/internal/models"
)

// MockPuzzleRepository is a mock implementation of repository.PuzzleRepository
type MockPuzzleRepository struct {
	mock.Mock
}

func (m *MockPuzzleRepository) Get(ctx context.Context, date string) (*models.Puzzle, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) Exists(ctx context.Context, date string) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockPuzzleRepository) Create(ctx context.Context, puzzle models.Puzzle) error {
	args := m.Called(ctx, puzzle)
	return args.Error(0)
}

func (m *MockPuzzleRepository) ListApproved(ctx context.Context, excludeIDs []string) ([]models.Puzzle, error) {
	args := m.Called(ctx, excludeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Puzzle), args.Error(1)
}
