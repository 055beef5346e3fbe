package service

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

// totpPeriod is the code window in seconds.
const totpPeriod = 30

// totpService implements TOTPService with 6-digit SHA-1 codes over 30-second
// windows, the parameters every mainstream authenticator app assumes.
type totpService struct {
	issuer string
	now    func() time.Time
}

// GenerateSecret creates a new shared secret for the account.
func (t *totpService) GenerateSecret(accountEmail string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: accountEmail,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate totp secret")
	}
	return key.Secret(), key.URL(), nil
}

// Verify checks the code against the secret with a skew tolerance of one
// window, so codes stay valid across the boundary of a 30-second period.
func (t *totpService) Verify(secret, code string) bool {
	valid, err := totp.ValidateCustom(code, secret, t.now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return valid
}

// NewTOTPService creates a TOTP service using the wall clock.
func NewTOTPService(issuer string) TOTPService {
	return NewTOTPServiceWithClock(issuer, time.Now)
}

// NewTOTPServiceWithClock creates a TOTP service with an injectable clock for
// deterministic tests.
func NewTOTPServiceWithClock(issuer string, now func() time.Time) TOTPService {
	return &totpService{issuer: issuer, now: now}
}
