package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authService "github.com/allisson/cardvault/internal/auth/service"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// twoFactorUseCase implements TwoFactorUseCase.
type twoFactorUseCase struct {
	enrollmentRepo EnrollmentRepository
	accountUseCase AccountUseCase
	totpService    authService.TOTPService
	fieldCipher    cryptoService.FieldCipher
}

// Setup issues a fresh secret and moves the account to Pending.
func (u *twoFactorUseCase) Setup(
	ctx context.Context,
	accountID uuid.UUID,
	email string,
) (*SetupOutput, error) {
	enrollment, err := u.Enrollment(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status == authDomain.StatusEnrolled {
		return nil, authDomain.ErrAlreadyEnrolled
	}

	return u.issueSecret(ctx, enrollment, email)
}

// Verify checks a code against the pending secret and completes enrollment.
func (u *twoFactorUseCase) Verify(ctx context.Context, accountID uuid.UUID, code string) error {
	enrollment, err := u.Enrollment(ctx, accountID)
	if err != nil {
		return err
	}
	if enrollment.Status != authDomain.StatusPending {
		return authDomain.ErrNotEnrolled
	}

	secret, err := u.fieldCipher.Decrypt(enrollment.EncryptedSecret)
	if err != nil {
		return err
	}

	if !u.totpService.Verify(secret, code) {
		return authDomain.ErrCodeInvalid
	}

	now := time.Now().UTC()
	enrollment.Status = authDomain.StatusEnrolled
	enrollment.ConfirmedAt = &now
	enrollment.UpdatedAt = now

	return u.enrollmentRepo.Upsert(ctx, enrollment)
}

// ResetInit re-proves the password and issues a fresh secret. The enrolled
// state is replaced by Pending, so the old secret stops gating requests the
// moment the reset starts.
func (u *twoFactorUseCase) ResetInit(
	ctx context.Context,
	accountID uuid.UUID,
	email, password string,
) (*SetupOutput, error) {
	if err := u.accountUseCase.VerifyPassword(ctx, accountID, password); err != nil {
		return nil, err
	}

	enrollment, err := u.Enrollment(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return u.issueSecret(ctx, enrollment, email)
}

// Enrollment loads the current enrollment, mapping a missing row to a
// NotEnrolled value.
func (u *twoFactorUseCase) Enrollment(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.TwoFactorEnrollment, error) {
	enrollment, err := u.enrollmentRepo.Get(ctx, accountID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return &authDomain.TwoFactorEnrollment{
				AccountID: accountID,
				Status:    authDomain.StatusNotEnrolled,
			}, nil
		}
		return nil, err
	}
	return enrollment, nil
}

// issueSecret generates and stores a fresh pending secret.
func (u *twoFactorUseCase) issueSecret(
	ctx context.Context,
	enrollment *authDomain.TwoFactorEnrollment,
	email string,
) (*SetupOutput, error) {
	secret, url, err := u.totpService.GenerateSecret(email)
	if err != nil {
		return nil, err
	}

	encryptedSecret, err := u.fieldCipher.Encrypt(secret)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	enrollment.Status = authDomain.StatusPending
	enrollment.EncryptedSecret = encryptedSecret
	enrollment.ConfirmedAt = nil
	enrollment.UpdatedAt = now

	if err := u.enrollmentRepo.Upsert(ctx, enrollment); err != nil {
		return nil, err
	}

	return &SetupOutput{Secret: secret, URL: url}, nil
}

// NewTwoFactorUseCase creates a new two-factor use case instance.
func NewTwoFactorUseCase(
	enrollmentRepo EnrollmentRepository,
	accountUseCase AccountUseCase,
	totpService authService.TOTPService,
	fieldCipher cryptoService.FieldCipher,
) TwoFactorUseCase {
	return &twoFactorUseCase{
		enrollmentRepo: enrollmentRepo,
		accountUseCase: accountUseCase,
		totpService:    totpService,
		fieldCipher:    fieldCipher,
	}
}
