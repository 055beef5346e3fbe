// Package usecase implements authentication business logic: account token
// authentication, password re-proof, and the two-factor enrollment lifecycle.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
)

// SetupOutput carries the fresh secret material a setup or reset issues.
// The plain secret is returned once and never stored unencrypted.
type SetupOutput struct {
	Secret string
	URL    string
}

// AccountUseCase defines account authentication operations.
type AccountUseCase interface {
	// Create registers an account and returns it with the plain API token.
	// The token is shown exactly once.
	Create(ctx context.Context, email, password string) (*authDomain.Account, string, error)

	// Authenticate resolves an account from an API token hash. Unknown hashes
	// fail with ErrInvalidToken.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Account, error)

	// VerifyPassword re-proves the account password, for operations that
	// require more than a bearer token. Fails with ErrPasswordInvalid.
	VerifyPassword(ctx context.Context, accountID uuid.UUID, password string) error
}

// TwoFactorUseCase defines the enrollment lifecycle operations.
type TwoFactorUseCase interface {
	// Setup issues a fresh secret and moves the account to Pending. Fails
	// with ErrAlreadyEnrolled once enrolled; reset is the only way out.
	Setup(ctx context.Context, accountID uuid.UUID, email string) (*SetupOutput, error)

	// Verify checks a code against the pending secret and completes
	// enrollment. Fails with ErrNotEnrolled when nothing is pending and
	// ErrCodeInvalid on a bad code.
	Verify(ctx context.Context, accountID uuid.UUID, code string) error

	// ResetInit re-proves the password, issues a fresh secret, and moves an
	// enrolled account back to Pending. The old secret stops gating requests
	// immediately; Verify completes the reset.
	ResetInit(ctx context.Context, accountID uuid.UUID, email, password string) (*SetupOutput, error)

	// Enrollment loads the current enrollment; a missing row is reported as
	// a NotEnrolled enrollment, not an error.
	Enrollment(ctx context.Context, accountID uuid.UUID) (*authDomain.TwoFactorEnrollment, error)
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *authDomain.Account) error
	Get(ctx context.Context, accountID uuid.UUID) (*authDomain.Account, error)
	GetByAPITokenHash(ctx context.Context, tokenHash string) (*authDomain.Account, error)
}

// EnrollmentRepository defines persistence operations for two-factor enrollments.
type EnrollmentRepository interface {
	Get(ctx context.Context, accountID uuid.UUID) (*authDomain.TwoFactorEnrollment, error)
	Upsert(ctx context.Context, enrollment *authDomain.TwoFactorEnrollment) error
}
