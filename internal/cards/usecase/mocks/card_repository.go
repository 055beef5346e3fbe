// Package mocks provides mock implementations for card use case dependencies.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
)

// MockCardRepository is a mock implementation of usecase.CardRepository.
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *cardsDomain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Get(ctx context.Context, accountID, cardID uuid.UUID) (*cardsDomain.Card, error) {
	args := m.Called(ctx, accountID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*cardsDomain.Card, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cardsDomain.Card), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card *cardsDomain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, accountID, cardID uuid.UUID) error {
	args := m.Called(ctx, accountID, cardID)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

// MockFpsAccountRepository is a mock implementation of usecase.FpsAccountRepository.
type MockFpsAccountRepository struct {
	mock.Mock
}

func (m *MockFpsAccountRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}
