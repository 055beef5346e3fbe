package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

// EnrollmentStatus is the state of an account's two-factor enrollment.
type EnrollmentStatus string

const (
	// StatusNotEnrolled means the account has never completed setup.
	StatusNotEnrolled EnrollmentStatus = "not_enrolled"

	// StatusPending means a secret has been issued but no code verified yet.
	// Pending enrollments never gate requests.
	StatusPending EnrollmentStatus = "pending_verification"

	// StatusEnrolled means a code has been verified against the current secret.
	StatusEnrolled EnrollmentStatus = "enrolled"
)

// TwoFactorEnrollment tracks the TOTP enrollment of an account. The shared
// secret is encrypted at rest with the symmetric field cipher.
//
// State machine: NotEnrolled -> Pending on setup; Pending -> Enrolled on the
// first verified code; Enrolled -> Pending with a fresh secret on reset-init
// (after password re-proof); verification completes the reset. Codes are only
// ever checked against the current state's secret.
type TwoFactorEnrollment struct {
	AccountID       uuid.UUID
	Status          EnrollmentStatus
	EncryptedSecret cryptoDomain.EncryptedField
	ConfirmedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Active reports whether the enrollment gates sensitive operations.
func (e *TwoFactorEnrollment) Active() bool {
	return e != nil && e.Status == StatusEnrolled
}
