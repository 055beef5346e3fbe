// Package mocks provides mock implementations for FPS use case dependencies.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
)

// MockFpsAccountRepository is a mock implementation of usecase.FpsAccountRepository.
type MockFpsAccountRepository struct {
	mock.Mock
}

func (m *MockFpsAccountRepository) Create(ctx context.Context, fpsAccount *fpsDomain.FpsAccount) error {
	args := m.Called(ctx, fpsAccount)
	return args.Error(0)
}

func (m *MockFpsAccountRepository) Get(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
) (*fpsDomain.FpsAccount, error) {
	args := m.Called(ctx, accountID, fpsAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fpsDomain.FpsAccount), args.Error(1)
}

func (m *MockFpsAccountRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*fpsDomain.FpsAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fpsDomain.FpsAccount), args.Error(1)
}

func (m *MockFpsAccountRepository) Update(ctx context.Context, fpsAccount *fpsDomain.FpsAccount) error {
	args := m.Called(ctx, fpsAccount)
	return args.Error(0)
}

func (m *MockFpsAccountRepository) Delete(ctx context.Context, accountID, fpsAccountID uuid.UUID) error {
	args := m.Called(ctx, accountID, fpsAccountID)
	return args.Error(0)
}

func (m *MockFpsAccountRepository) DeleteByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}
