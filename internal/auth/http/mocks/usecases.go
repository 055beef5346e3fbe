// Package mocks provides mock implementations for testing HTTP handlers and middleware.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
)

// MockAccountUseCase is a mock implementation of usecase.AccountUseCase.
type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) Create(
	ctx context.Context,
	email, password string,
) (*authDomain.Account, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*authDomain.Account), args.String(1), args.Error(2)
}

func (m *MockAccountUseCase) Authenticate(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Account, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Account), args.Error(1)
}

func (m *MockAccountUseCase) VerifyPassword(
	ctx context.Context,
	accountID uuid.UUID,
	password string,
) error {
	args := m.Called(ctx, accountID, password)
	return args.Error(0)
}

// MockTwoFactorUseCase is a mock implementation of usecase.TwoFactorUseCase.
type MockTwoFactorUseCase struct {
	mock.Mock
}

func (m *MockTwoFactorUseCase) Setup(
	ctx context.Context,
	accountID uuid.UUID,
	email string,
) (*authUseCase.SetupOutput, error) {
	args := m.Called(ctx, accountID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.SetupOutput), args.Error(1)
}

func (m *MockTwoFactorUseCase) Verify(ctx context.Context, accountID uuid.UUID, code string) error {
	args := m.Called(ctx, accountID, code)
	return args.Error(0)
}

func (m *MockTwoFactorUseCase) ResetInit(
	ctx context.Context,
	accountID uuid.UUID,
	email, password string,
) (*authUseCase.SetupOutput, error) {
	args := m.Called(ctx, accountID, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.SetupOutput), args.Error(1)
}

func (m *MockTwoFactorUseCase) Enrollment(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.TwoFactorEnrollment, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TwoFactorEnrollment), args.Error(1)
}
