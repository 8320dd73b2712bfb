package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClaimRepository is a mock implementation of repository.ClaimRepository
type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) IsAdmin(ctx context.Context, uid string) (bool, error) {
	args := m.Called(ctx, uid)
	return args.Bool(0), args.Error(1)
}

func (m *MockClaimRepository) SetAdmin(ctx context.Context, uid string, admin bool) error {
	args := m.Called(ctx, uid, admin)
	return args.Error(0)
}
