// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
	"github.com/allisson/cardvault/internal/cards/usecase"
)

// MockCardUseCase is a mock implementation of usecase.CardUseCase.
type MockCardUseCase struct {
	mock.Mock
}

func (m *MockCardUseCase) Create(
	ctx context.Context,
	accountID uuid.UUID,
	input usecase.CreateCardInput,
) (*cardsDomain.Card, error) {
	args := m.Called(ctx, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardUseCase) List(ctx context.Context, accountID uuid.UUID) ([]*cardsDomain.CardSummary, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cardsDomain.CardSummary), args.Error(1)
}

func (m *MockCardUseCase) Reveal(ctx context.Context, accountID, cardID uuid.UUID) (*cardsDomain.CardDetails, error) {
	args := m.Called(ctx, accountID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.CardDetails), args.Error(1)
}

func (m *MockCardUseCase) Update(
	ctx context.Context,
	accountID, cardID uuid.UUID,
	input usecase.UpdateCardInput,
) error {
	args := m.Called(ctx, accountID, cardID, input)
	return args.Error(0)
}

func (m *MockCardUseCase) Delete(ctx context.Context, accountID, cardID uuid.UUID) error {
	args := m.Called(ctx, accountID, cardID)
	return args.Error(0)
}

func (m *MockCardUseCase) Purge(ctx context.Context, accountID uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}
