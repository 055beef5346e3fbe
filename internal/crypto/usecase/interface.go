// Package usecase implements business logic for per-account key material
// provisioning. The repository's uniqueness constraint on account_id is the
// arbiter of concurrent provisioning races.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

// KeyMaterialRepository defines persistence operations for account key material.
type KeyMaterialRepository interface {
	// Create inserts key material for an account. Must enforce at-most-once
	// per account via a uniqueness constraint and return ErrConflict when
	// material already exists.
	Create(ctx context.Context, material *cryptoDomain.AccountKeyMaterial) error

	// Get retrieves the key material for an account. Returns ErrNotFound when
	// the account has no material yet.
	Get(ctx context.Context, accountID uuid.UUID) (*cryptoDomain.AccountKeyMaterial, error)
}

// KeyMaterialUseCase manages the lifecycle of per-account asymmetric key material.
type KeyMaterialUseCase interface {
	// Provision generates and persists fresh key material for an account.
	// Returns ErrAlreadyProvisioned when material exists; it never silently
	// overwrites existing material.
	Provision(ctx context.Context, accountID uuid.UUID) (*cryptoDomain.AccountKeyMaterial, error)

	// ProvisionIfMissing returns the account's key material, generating it
	// lazily for legacy accounts that predate asymmetric encryption. Safe to
	// call concurrently: losers of the creation race re-read the winner's
	// material.
	ProvisionIfMissing(ctx context.Context, accountID uuid.UUID) (*cryptoDomain.AccountKeyMaterial, error)

	// Get retrieves existing key material without provisioning.
	Get(ctx context.Context, accountID uuid.UUID) (*cryptoDomain.AccountKeyMaterial, error)
}
