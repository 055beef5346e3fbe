package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
	auditService "github.com/allisson/cardvault/internal/audit/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// verifyPageSize is the batch size for the full trail verification walk.
const verifyPageSize = 500

// auditLogUseCase implements AuditLogUseCase.
type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
	signer       auditService.AuditSigner
	masterKey    []byte
}

// Record signs and persists an audit entry for a sensitive operation.
func (a *auditLogUseCase) Record(
	ctx context.Context,
	accountID uuid.UUID,
	action auditDomain.Action,
	resource string,
	metadata map[string]any,
) error {
	auditLog := &auditDomain.AuditLog{
		ID:        uuid.Must(uuid.NewV7()),
		AccountID: accountID,
		Action:    action,
		Resource:  resource,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	signature, err := a.signer.Sign(a.masterKey, auditLog)
	if err != nil {
		return apperrors.Wrap(err, "failed to sign audit log")
	}
	auditLog.Signature = signature

	if err := a.auditLogRepo.Create(ctx, auditLog); err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// ListByAccount retrieves an account's audit entries, newest first.
func (a *auditLogUseCase) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*auditDomain.AuditLog, error) {
	auditLogs, err := a.auditLogRepo.ListByAccount(ctx, accountID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	return auditLogs, nil
}

// VerifyAll re-verifies every entry in the trail and returns the IDs of the
// entries that fail, paging through the repository in fixed-size batches.
func (a *auditLogUseCase) VerifyAll(ctx context.Context) ([]uuid.UUID, error) {
	var tampered []uuid.UUID

	for offset := 0; ; offset += verifyPageSize {
		auditLogs, err := a.auditLogRepo.List(ctx, offset, verifyPageSize)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list audit logs")
		}
		if len(auditLogs) == 0 {
			return tampered, nil
		}

		for _, auditLog := range auditLogs {
			if err := a.signer.Verify(a.masterKey, auditLog); err != nil {
				if apperrors.Is(err, auditDomain.ErrSignatureInvalid) {
					tampered = append(tampered, auditLog.ID)
					continue
				}
				return nil, err
			}
		}

		if len(auditLogs) < verifyPageSize {
			return tampered, nil
		}
	}
}

// NewAuditLogUseCase creates a new AuditLogUseCase. The master secret is the
// root of the signing key derivation.
func NewAuditLogUseCase(
	auditLogRepo AuditLogRepository,
	signer auditService.AuditSigner,
	masterSecret string,
) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
		signer:       signer,
		masterKey:    []byte(masterSecret),
	}
}
