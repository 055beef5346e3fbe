package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
	"github.com/allisson/cardvault/internal/metrics"
)

// fpsUseCaseWithMetrics decorates FpsUseCase with metrics instrumentation.
type fpsUseCaseWithMetrics struct {
	next    FpsUseCase
	metrics metrics.BusinessMetrics
}

// NewFpsUseCaseWithMetrics wraps an FpsUseCase with metrics recording.
func NewFpsUseCaseWithMetrics(useCase FpsUseCase, m metrics.BusinessMetrics) FpsUseCase {
	return &fpsUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (f *fpsUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	f.metrics.RecordOperation(ctx, "fps", operation, status)
	f.metrics.RecordDuration(ctx, "fps", operation, time.Since(start), status)
}

// Create records metrics for alias creation operations.
func (f *fpsUseCaseWithMetrics) Create(
	ctx context.Context,
	accountID uuid.UUID,
	input CreateFpsInput,
) (*fpsDomain.FpsAccount, error) {
	start := time.Now()
	fpsAccount, err := f.next.Create(ctx, accountID, input)
	f.record(ctx, "fps_create", start, err)
	return fpsAccount, err
}

// List records metrics for alias listing operations.
func (f *fpsUseCaseWithMetrics) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*fpsDomain.FpsSummary, error) {
	start := time.Now()
	summaries, err := f.next.List(ctx, accountID)
	f.record(ctx, "fps_list", start, err)
	return summaries, err
}

// Detail records metrics for alias detail operations.
func (f *fpsUseCaseWithMetrics) Detail(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
) (*fpsDomain.FpsAccount, error) {
	start := time.Now()
	fpsAccount, err := f.next.Detail(ctx, accountID, fpsAccountID)
	f.record(ctx, "fps_detail", start, err)
	return fpsAccount, err
}

// Update records metrics for alias update operations.
func (f *fpsUseCaseWithMetrics) Update(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
	input UpdateFpsInput,
) error {
	start := time.Now()
	err := f.next.Update(ctx, accountID, fpsAccountID, input)
	f.record(ctx, "fps_update", start, err)
	return err
}

// Delete records metrics for alias deletion operations.
func (f *fpsUseCaseWithMetrics) Delete(ctx context.Context, accountID, fpsAccountID uuid.UUID) error {
	start := time.Now()
	err := f.next.Delete(ctx, accountID, fpsAccountID)
	f.record(ctx, "fps_delete", start, err)
	return err
}

// Banks is a static lookup; no metrics recorded.
func (f *fpsUseCaseWithMetrics) Banks() []string {
	return f.next.Banks()
}
