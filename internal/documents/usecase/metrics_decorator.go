package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	documentsDomain "github.com/allisson/cardvault/internal/documents/domain"
	"github.com/allisson/cardvault/internal/metrics"
)

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *documentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordOperation(ctx, "documents", operation, status)
	d.metrics.RecordDuration(ctx, "documents", operation, time.Since(start), status)
}

// Create records metrics for document creation operations.
func (d *documentUseCaseWithMetrics) Create(
	ctx context.Context,
	accountID uuid.UUID,
	input CreateDocumentInput,
) (*documentsDomain.Document, error) {
	start := time.Now()
	document, err := d.next.Create(ctx, accountID, input)
	d.record(ctx, "document_create", start, err)
	return document, err
}

// List records metrics for document listing operations.
func (d *documentUseCaseWithMetrics) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*documentsDomain.DocumentSummary, error) {
	start := time.Now()
	summaries, err := d.next.List(ctx, accountID)
	d.record(ctx, "document_list", start, err)
	return summaries, err
}

// Reveal records metrics for document reveal operations.
func (d *documentUseCaseWithMetrics) Reveal(
	ctx context.Context,
	accountID, documentID uuid.UUID,
) (*documentsDomain.DocumentDetails, error) {
	start := time.Now()
	details, err := d.next.Reveal(ctx, accountID, documentID)
	d.record(ctx, "document_reveal", start, err)
	return details, err
}

// Update records metrics for document update operations.
func (d *documentUseCaseWithMetrics) Update(
	ctx context.Context,
	accountID, documentID uuid.UUID,
	input UpdateDocumentInput,
) error {
	start := time.Now()
	err := d.next.Update(ctx, accountID, documentID, input)
	d.record(ctx, "document_update", start, err)
	return err
}

// Delete records metrics for document deletion operations.
func (d *documentUseCaseWithMetrics) Delete(ctx context.Context, accountID, documentID uuid.UUID) error {
	start := time.Now()
	err := d.next.Delete(ctx, accountID, documentID)
	d.record(ctx, "document_delete", start, err)
	return err
}
