package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	"github.com/allisson/cardvault/internal/metrics"
)

// twoFactorUseCaseWithMetrics decorates TwoFactorUseCase with metrics instrumentation.
type twoFactorUseCaseWithMetrics struct {
	next    TwoFactorUseCase
	metrics metrics.BusinessMetrics
}

// NewTwoFactorUseCaseWithMetrics wraps a TwoFactorUseCase with metrics recording.
func NewTwoFactorUseCaseWithMetrics(useCase TwoFactorUseCase, m metrics.BusinessMetrics) TwoFactorUseCase {
	return &twoFactorUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *twoFactorUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordOperation(ctx, "auth", operation, status)
	t.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Setup records metrics for enrollment setup operations.
func (t *twoFactorUseCaseWithMetrics) Setup(
	ctx context.Context,
	accountID uuid.UUID,
	email string,
) (*SetupOutput, error) {
	start := time.Now()
	output, err := t.next.Setup(ctx, accountID, email)
	t.record(ctx, "twofactor_setup", start, err)
	return output, err
}

// Verify records metrics for enrollment verification operations.
func (t *twoFactorUseCaseWithMetrics) Verify(ctx context.Context, accountID uuid.UUID, code string) error {
	start := time.Now()
	err := t.next.Verify(ctx, accountID, code)
	t.record(ctx, "twofactor_verify", start, err)
	return err
}

// ResetInit records metrics for enrollment reset operations.
func (t *twoFactorUseCaseWithMetrics) ResetInit(
	ctx context.Context,
	accountID uuid.UUID,
	email, password string,
) (*SetupOutput, error) {
	start := time.Now()
	output, err := t.next.ResetInit(ctx, accountID, email, password)
	t.record(ctx, "twofactor_reset", start, err)
	return output, err
}

// Enrollment records metrics for enrollment lookups.
func (t *twoFactorUseCaseWithMetrics) Enrollment(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.TwoFactorEnrollment, error) {
	start := time.Now()
	enrollment, err := t.next.Enrollment(ctx, accountID)
	t.record(ctx, "twofactor_enrollment_get", start, err)
	return enrollment, err
}
