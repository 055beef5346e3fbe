package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
	auditService "github.com/allisson/cardvault/internal/audit/service"
	"github.com/allisson/cardvault/internal/audit/usecase"
	"github.com/allisson/cardvault/internal/audit/usecase/mocks"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

const testMasterSecret = "test-master-secret"

func TestAuditLogUseCaseRecord(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())
	signer := auditService.NewAuditSigner()

	t.Run("signs and persists the entry", func(t *testing.T) {
		repo := new(mocks.MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(repo, signer, testMasterSecret)

		repo.On("Create", ctx, mock.MatchedBy(func(log *auditDomain.AuditLog) bool {
			return log.AccountID == accountID &&
				log.Action == auditDomain.ActionCardReveal &&
				log.Resource == "card-id" &&
				len(log.Signature) == 32 &&
				signer.Verify([]byte(testMasterSecret), log) == nil
		})).Return(nil)

		err := uc.Record(ctx, accountID, auditDomain.ActionCardReveal, "card-id",
			map[string]any{"network": "visa"})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("repository errors propagate", func(t *testing.T) {
		repo := new(mocks.MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(repo, signer, testMasterSecret)

		repo.On("Create", ctx, mock.Anything).Return(apperrors.New("database unavailable"))

		err := uc.Record(ctx, accountID, auditDomain.ActionCardPurge, "", nil)
		assert.Error(t, err)
	})
}

func TestAuditLogUseCaseListByAccount(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())
	signer := auditService.NewAuditSigner()

	repo := new(mocks.MockAuditLogRepository)
	uc := usecase.NewAuditLogUseCase(repo, signer, testMasterSecret)

	logs := []*auditDomain.AuditLog{
		{ID: uuid.Must(uuid.NewV7()), AccountID: accountID, Action: auditDomain.ActionCardReveal},
	}
	repo.On("ListByAccount", ctx, accountID, 0, 50).Return(logs, nil)

	got, err := uc.ListByAccount(ctx, accountID, 0, 50)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAuditLogUseCaseVerifyAll(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())
	signer := auditService.NewAuditSigner()

	signedLog := func(t *testing.T, action auditDomain.Action) *auditDomain.AuditLog {
		t.Helper()
		log := &auditDomain.AuditLog{
			ID:        uuid.Must(uuid.NewV7()),
			AccountID: accountID,
			Action:    action,
			Resource:  "resource",
			CreatedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		}
		signature, err := signer.Sign([]byte(testMasterSecret), log)
		require.NoError(t, err)
		log.Signature = signature
		return log
	}

	t.Run("clean trail reports nothing", func(t *testing.T) {
		repo := new(mocks.MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(repo, signer, testMasterSecret)

		repo.On("List", ctx, 0, mock.Anything).Return([]*auditDomain.AuditLog{
			signedLog(t, auditDomain.ActionCardReveal),
			signedLog(t, auditDomain.ActionCardPurge),
		}, nil)

		tampered, err := uc.VerifyAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, tampered)
	})

	t.Run("tampered entries are reported by id", func(t *testing.T) {
		repo := new(mocks.MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(repo, signer, testMasterSecret)

		clean := signedLog(t, auditDomain.ActionCardReveal)
		tamperedLog := signedLog(t, auditDomain.ActionCardReveal)
		tamperedLog.Resource = "rewritten-after-signing"

		repo.On("List", ctx, 0, mock.Anything).
			Return([]*auditDomain.AuditLog{clean, tamperedLog}, nil)

		tampered, err := uc.VerifyAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{tamperedLog.ID}, tampered)
	})

	t.Run("empty trail verifies", func(t *testing.T) {
		repo := new(mocks.MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(repo, signer, testMasterSecret)

		repo.On("List", ctx, 0, mock.Anything).Return([]*auditDomain.AuditLog{}, nil)

		tampered, err := uc.VerifyAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, tampered)
	})
}
