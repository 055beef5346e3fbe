package service

import (
	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
)

// StepUpGuard authorizes sensitive operations for accounts with an active
// two-factor enrollment. Accounts that never enrolled, or whose enrollment is
// still pending verification, pass through unchallenged.
type StepUpGuard struct {
	fieldCipher cryptoService.FieldCipher
	totp        TOTPService
}

// NewStepUpGuard creates a step-up guard.
func NewStepUpGuard(fieldCipher cryptoService.FieldCipher, totp TOTPService) *StepUpGuard {
	return &StepUpGuard{
		fieldCipher: fieldCipher,
		totp:        totp,
	}
}

// Authorize checks the TOTP code for an enrolled account. Returns nil when the
// enrollment does not gate requests, ErrCodeRequired when an enrolled account
// supplies no code, and ErrCodeInvalid when verification fails. The guard only
// reads enrollment state; it never mutates it.
func (g *StepUpGuard) Authorize(enrollment *authDomain.TwoFactorEnrollment, code string) error {
	if !enrollment.Active() {
		return nil
	}

	if code == "" {
		return authDomain.ErrCodeRequired
	}

	secret, err := g.fieldCipher.Decrypt(enrollment.EncryptedSecret)
	if err != nil {
		return authDomain.ErrCodeInvalid
	}

	if !g.totp.Verify(secret, code) {
		return authDomain.ErrCodeInvalid
	}

	return nil
}
