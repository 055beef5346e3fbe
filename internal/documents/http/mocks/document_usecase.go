// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	documentsDomain "github.com/allisson/cardvault/internal/documents/domain"
	documentsUseCase "github.com/allisson/cardvault/internal/documents/usecase"
)

// MockDocumentUseCase is a mock implementation of usecase.DocumentUseCase.
type MockDocumentUseCase struct {
	mock.Mock
}

func (m *MockDocumentUseCase) Create(
	ctx context.Context,
	accountID uuid.UUID,
	input documentsUseCase.CreateDocumentInput,
) (*documentsDomain.Document, error) {
	args := m.Called(ctx, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentsDomain.Document), args.Error(1)
}

func (m *MockDocumentUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*documentsDomain.DocumentSummary, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documentsDomain.DocumentSummary), args.Error(1)
}

func (m *MockDocumentUseCase) Reveal(
	ctx context.Context,
	accountID, documentID uuid.UUID,
) (*documentsDomain.DocumentDetails, error) {
	args := m.Called(ctx, accountID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentsDomain.DocumentDetails), args.Error(1)
}

func (m *MockDocumentUseCase) Update(
	ctx context.Context,
	accountID, documentID uuid.UUID,
	input documentsUseCase.UpdateDocumentInput,
) error {
	args := m.Called(ctx, accountID, documentID, input)
	return args.Error(0)
}

func (m *MockDocumentUseCase) Delete(ctx context.Context, accountID, documentID uuid.UUID) error {
	args := m.Called(ctx, accountID, documentID)
	return args.Error(0)
}
