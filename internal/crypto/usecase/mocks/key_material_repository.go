// Package mocks provides mock implementations for testing crypto use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

// MockKeyMaterialRepository is a mock implementation of KeyMaterialRepository for testing.
type MockKeyMaterialRepository struct {
	mock.Mock
}

// Create mocks the Create method of KeyMaterialRepository.
func (m *MockKeyMaterialRepository) Create(
	ctx context.Context,
	material *cryptoDomain.AccountKeyMaterial,
) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

// Get mocks the Get method of KeyMaterialRepository.
func (m *MockKeyMaterialRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*cryptoDomain.AccountKeyMaterial, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.AccountKeyMaterial), args.Error(1)
}
