package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
	"github.com/allisson/cardvault/internal/metrics"
)

// cardUseCaseWithMetrics decorates CardUseCase with metrics instrumentation.
type cardUseCaseWithMetrics struct {
	next    CardUseCase
	metrics metrics.BusinessMetrics
}

// NewCardUseCaseWithMetrics wraps a CardUseCase with metrics recording.
func NewCardUseCaseWithMetrics(useCase CardUseCase, m metrics.BusinessMetrics) CardUseCase {
	return &cardUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *cardUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, "cards", operation, status)
	c.metrics.RecordDuration(ctx, "cards", operation, time.Since(start), status)
}

// Create records metrics for card creation operations.
func (c *cardUseCaseWithMetrics) Create(
	ctx context.Context,
	accountID uuid.UUID,
	input CreateCardInput,
) (*cardsDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Create(ctx, accountID, input)
	c.record(ctx, "card_create", start, err)
	return card, err
}

// List records metrics for card listing operations.
func (c *cardUseCaseWithMetrics) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*cardsDomain.CardSummary, error) {
	start := time.Now()
	summaries, err := c.next.List(ctx, accountID)
	c.record(ctx, "card_list", start, err)
	return summaries, err
}

// Reveal records metrics for card reveal operations.
func (c *cardUseCaseWithMetrics) Reveal(
	ctx context.Context,
	accountID, cardID uuid.UUID,
) (*cardsDomain.CardDetails, error) {
	start := time.Now()
	details, err := c.next.Reveal(ctx, accountID, cardID)
	c.record(ctx, "card_reveal", start, err)
	return details, err
}

// Update records metrics for card update operations.
func (c *cardUseCaseWithMetrics) Update(
	ctx context.Context,
	accountID, cardID uuid.UUID,
	input UpdateCardInput,
) error {
	start := time.Now()
	err := c.next.Update(ctx, accountID, cardID, input)
	c.record(ctx, "card_update", start, err)
	return err
}

// Delete records metrics for card deletion operations.
func (c *cardUseCaseWithMetrics) Delete(ctx context.Context, accountID, cardID uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, accountID, cardID)
	c.record(ctx, "card_delete", start, err)
	return err
}

// Purge records metrics for account purge operations.
func (c *cardUseCaseWithMetrics) Purge(
	ctx context.Context,
	accountID uuid.UUID,
) (int64, int64, error) {
	start := time.Now()
	cards, aliases, err := c.next.Purge(ctx, accountID)
	c.record(ctx, "card_purge", start, err)
	return cards, aliases, err
}
