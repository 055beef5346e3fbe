// Package usecase implements business logic orchestration for FPS aliases.
package usecase

import (
	"context"

	"github.com/google/uuid"

	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
)

// CreateFpsInput carries the fields for a new FPS alias.
type CreateFpsInput struct {
	FpsID     string
	Recipient string
	Bank      string
	Note      string
}

// UpdateFpsInput carries a partial alias update; nil pointers leave the
// corresponding field untouched. The FPS ID itself is immutable.
type UpdateFpsInput struct {
	Recipient *string
	Bank      *string
	Note      *string
}

// FpsUseCase defines the FPS alias operations.
type FpsUseCase interface {
	// Create validates and stores a new alias. The FPS ID must be 8 to 12
	// digits and unique within the account.
	Create(ctx context.Context, accountID uuid.UUID, input CreateFpsInput) (*fpsDomain.FpsAccount, error)

	// List returns the list projection without notes.
	List(ctx context.Context, accountID uuid.UUID) ([]*fpsDomain.FpsSummary, error)

	// Detail returns the full alias including the note. Callers must have
	// passed step-up authentication.
	Detail(ctx context.Context, accountID, fpsAccountID uuid.UUID) (*fpsDomain.FpsAccount, error)

	// Update applies a partial update. The FPS ID cannot change.
	Update(ctx context.Context, accountID, fpsAccountID uuid.UUID, input UpdateFpsInput) error

	// Delete removes a single alias.
	Delete(ctx context.Context, accountID, fpsAccountID uuid.UUID) error

	// Banks returns the curated bank list for client pickers.
	Banks() []string
}

// FpsAccountRepository defines persistence operations for FPS aliases.
type FpsAccountRepository interface {
	Create(ctx context.Context, fpsAccount *fpsDomain.FpsAccount) error
	Get(ctx context.Context, accountID, fpsAccountID uuid.UUID) (*fpsDomain.FpsAccount, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*fpsDomain.FpsAccount, error)
	Update(ctx context.Context, fpsAccount *fpsDomain.FpsAccount) error
	Delete(ctx context.Context, accountID, fpsAccountID uuid.UUID) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}
