// Package mocks provides mock implementations for database interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager. Unless the
// expectation returns an error, the transactional function is executed with
// the original context so repository calls inside it still run.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks transaction execution.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
