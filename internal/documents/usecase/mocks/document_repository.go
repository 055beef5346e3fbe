// Package mocks provides mock implementations for testing use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	documentsDomain "github.com/allisson/cardvault/internal/documents/domain"
)

// MockDocumentRepository is a mock implementation of usecase.DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, document *documentsDomain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) Get(
	ctx context.Context,
	accountID, documentID uuid.UUID,
) (*documentsDomain.Document, error) {
	args := m.Called(ctx, accountID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentsDomain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*documentsDomain.Document, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documentsDomain.Document), args.Error(1)
}

func (m *MockDocumentRepository) Update(ctx context.Context, document *documentsDomain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, accountID, documentID uuid.UUID) error {
	args := m.Called(ctx, accountID, documentID)
	return args.Error(0)
}
