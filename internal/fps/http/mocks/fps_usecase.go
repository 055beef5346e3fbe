// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
	fpsUseCase "github.com/allisson/cardvault/internal/fps/usecase"
)

// MockFpsUseCase is a mock implementation of usecase.FpsUseCase.
type MockFpsUseCase struct {
	mock.Mock
}

func (m *MockFpsUseCase) Create(
	ctx context.Context,
	accountID uuid.UUID,
	input fpsUseCase.CreateFpsInput,
) (*fpsDomain.FpsAccount, error) {
	args := m.Called(ctx, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fpsDomain.FpsAccount), args.Error(1)
}

func (m *MockFpsUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*fpsDomain.FpsSummary, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fpsDomain.FpsSummary), args.Error(1)
}

func (m *MockFpsUseCase) Detail(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
) (*fpsDomain.FpsAccount, error) {
	args := m.Called(ctx, accountID, fpsAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fpsDomain.FpsAccount), args.Error(1)
}

func (m *MockFpsUseCase) Update(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
	input fpsUseCase.UpdateFpsInput,
) error {
	args := m.Called(ctx, accountID, fpsAccountID, input)
	return args.Error(0)
}

func (m *MockFpsUseCase) Delete(ctx context.Context, accountID, fpsAccountID uuid.UUID) error {
	args := m.Called(ctx, accountID, fpsAccountID)
	return args.Error(0)
}

func (m *MockFpsUseCase) Banks() []string {
	args := m.Called()
	return args.Get(0).([]string)
}
