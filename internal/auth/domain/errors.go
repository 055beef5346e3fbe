package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

var (
	// ErrCodeRequired indicates an enrolled account attempted a guarded
	// operation without supplying a TOTP code.
	ErrCodeRequired = errors.Wrap(errors.ErrUnauthorized, "totp code required")

	// ErrCodeInvalid indicates the supplied TOTP code failed verification.
	ErrCodeInvalid = errors.Wrap(errors.ErrUnauthorized, "totp code invalid")

	// ErrPasswordInvalid indicates the password re-proof failed.
	ErrPasswordInvalid = errors.Wrap(errors.ErrUnauthorized, "password invalid")

	// ErrInvalidToken indicates the API token is unknown.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrNotEnrolled indicates a verification attempt without a pending or
	// enrolled secret.
	ErrNotEnrolled = errors.Wrap(errors.ErrInvalidInput, "two-factor not set up")

	// ErrAlreadyEnrolled indicates a setup attempt while already enrolled;
	// enrolled accounts must go through reset with password re-proof.
	ErrAlreadyEnrolled = errors.Wrap(errors.ErrConflict, "two-factor already enrolled")
)
