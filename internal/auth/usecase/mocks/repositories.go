// Package mocks provides mock implementations for auth use case dependencies.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
)

// MockAccountRepository is a mock implementation of usecase.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *authDomain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, accountID uuid.UUID) (*authDomain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByAPITokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Account, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Account), args.Error(1)
}

// MockEnrollmentRepository is a mock implementation of usecase.EnrollmentRepository.
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.TwoFactorEnrollment, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TwoFactorEnrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) Upsert(
	ctx context.Context,
	enrollment *authDomain.TwoFactorEnrollment,
) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}
