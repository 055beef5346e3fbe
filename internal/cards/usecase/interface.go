// Package usecase implements business logic orchestration for card records:
// classification, policy enforcement, field encryption, and persistence.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
)

// CreateCardInput carries the plaintext fields for a new card.
type CreateCardInput struct {
	Number     string
	CVV        string
	Expiration string
	Bank       string
	Cardholder string
	Note       string
	Type       cardsDomain.CardType
}

// UpdateCardInput carries a partial card update; nil pointers leave the
// corresponding field untouched.
type UpdateCardInput struct {
	Number     *string
	CVV        *string
	Expiration *string
	Bank       *string
	Cardholder *string
	Note       *string
	Type       *cardsDomain.CardType
}

// CardUseCase defines the card record operations.
type CardUseCase interface {
	// Create validates, classifies, and stores a new card. No step-up is
	// required upstream; the record never leaves storage unencrypted.
	Create(ctx context.Context, accountID uuid.UUID, input CreateCardInput) (*cardsDomain.Card, error)

	// List returns the non-sensitive list projection (last four digits only).
	List(ctx context.Context, accountID uuid.UUID) ([]*cardsDomain.CardSummary, error)

	// Reveal decrypts and returns the full card details. Callers must have
	// passed step-up authentication.
	Reveal(ctx context.Context, accountID, cardID uuid.UUID) (*cardsDomain.CardDetails, error)

	// Update applies a partial update, re-classifying on number change and
	// re-asserting network-forced fields.
	Update(ctx context.Context, accountID, cardID uuid.UUID, input UpdateCardInput) error

	// Delete removes a single card.
	Delete(ctx context.Context, accountID, cardID uuid.UUID) error

	// Purge removes all cards and FPS aliases of the account in one
	// transaction, returning the deleted counts.
	Purge(ctx context.Context, accountID uuid.UUID) (cards int64, aliases int64, err error)
}

// CardRepository defines persistence operations for card records.
type CardRepository interface {
	Create(ctx context.Context, card *cardsDomain.Card) error
	Get(ctx context.Context, accountID, cardID uuid.UUID) (*cardsDomain.Card, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*cardsDomain.Card, error)
	Update(ctx context.Context, card *cardsDomain.Card) error
	Delete(ctx context.Context, accountID, cardID uuid.UUID) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// FpsAccountRepository is the slice of the FPS repository the purge
// transaction needs.
type FpsAccountRepository interface {
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}
