// Package usecase implements business logic orchestration for the audit trail.
package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
)

// AuditLogUseCase defines the audit trail operations.
type AuditLogUseCase interface {
	// Record signs and persists an audit entry for a sensitive operation.
	// The metadata parameter is optional and can be nil.
	Record(
		ctx context.Context,
		accountID uuid.UUID,
		action auditDomain.Action,
		resource string,
		metadata map[string]any,
	) error

	// ListByAccount retrieves an account's audit entries ordered by
	// created_at descending with pagination.
	ListByAccount(
		ctx context.Context,
		accountID uuid.UUID,
		offset, limit int,
	) ([]*auditDomain.AuditLog, error)

	// VerifyAll walks the whole trail and returns the IDs of entries whose
	// signature no longer matches their contents.
	VerifyAll(ctx context.Context) ([]uuid.UUID, error)
}

// AuditLogRepository defines persistence operations for audit entries.
// Entries are append-only; there is no update or delete.
type AuditLogRepository interface {
	Create(ctx context.Context, log *auditDomain.AuditLog) error
	ListByAccount(
		ctx context.Context,
		accountID uuid.UUID,
		offset, limit int,
	) ([]*auditDomain.AuditLog, error)
	List(ctx context.Context, offset, limit int) ([]*auditDomain.AuditLog, error)
}
