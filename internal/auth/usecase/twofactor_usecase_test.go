package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	httpMocks "github.com/allisson/cardvault/internal/auth/http/mocks"
	authService "github.com/allisson/cardvault/internal/auth/service"
	"github.com/allisson/cardvault/internal/auth/usecase"
	"github.com/allisson/cardvault/internal/auth/usecase/mocks"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

type twoFactorFixture struct {
	enrollmentRepo *mocks.MockEnrollmentRepository
	accountUseCase *httpMocks.MockAccountUseCase
	fieldCipher    *cryptoService.AESCBCFieldCipher
	useCase        usecase.TwoFactorUseCase
	now            time.Time
}

func newTwoFactorFixture(t *testing.T) *twoFactorFixture {
	t.Helper()

	now := time.Date(2025, 6, 15, 12, 0, 15, 0, time.UTC)
	cipher, err := cryptoService.NewAESCBCFieldCipher("test-master-secret")
	require.NoError(t, err)

	enrollmentRepo := new(mocks.MockEnrollmentRepository)
	accountUseCase := new(httpMocks.MockAccountUseCase)
	totpService := authService.NewTOTPServiceWithClock(
		"cardvault",
		func() time.Time { return now },
	)

	return &twoFactorFixture{
		enrollmentRepo: enrollmentRepo,
		accountUseCase: accountUseCase,
		fieldCipher:    cipher,
		useCase: usecase.NewTwoFactorUseCase(
			enrollmentRepo,
			accountUseCase,
			totpService,
			cipher,
		),
		now: now,
	}
}

func validCodeFor(t *testing.T, secret string, at time.Time) string {
	t.Helper()
	code, err := totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	return code
}

func TestTwoFactorUseCaseSetup(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	t.Run("first setup stores a pending enrollment", func(t *testing.T) {
		f := newTwoFactorFixture(t)

		f.enrollmentRepo.On("Get", ctx, accountID).Return(nil, apperrors.ErrNotFound)
		f.enrollmentRepo.On("Upsert", ctx, mock.MatchedBy(func(e *authDomain.TwoFactorEnrollment) bool {
			return e.Status == authDomain.StatusPending &&
				e.ConfirmedAt == nil &&
				!e.EncryptedSecret.IsZero()
		})).Return(nil)

		output, err := f.useCase.Setup(ctx, accountID, "user@example.com")

		require.NoError(t, err)
		assert.NotEmpty(t, output.Secret)
		assert.Contains(t, output.URL, "otpauth://totp/")
		f.enrollmentRepo.AssertExpectations(t)
	})

	t.Run("setup replaces a pending secret", func(t *testing.T) {
		f := newTwoFactorFixture(t)

		existing := &authDomain.TwoFactorEnrollment{
			AccountID: accountID,
			Status:    authDomain.StatusPending,
			CreatedAt: f.now.Add(-time.Hour),
		}
		f.enrollmentRepo.On("Get", ctx, accountID).Return(existing, nil)
		f.enrollmentRepo.On("Upsert", ctx, mock.MatchedBy(func(e *authDomain.TwoFactorEnrollment) bool {
			return e.Status == authDomain.StatusPending && !e.CreatedAt.IsZero()
		})).Return(nil)

		_, err := f.useCase.Setup(ctx, accountID, "user@example.com")

		require.NoError(t, err)
	})

	t.Run("setup on an enrolled account conflicts", func(t *testing.T) {
		f := newTwoFactorFixture(t)

		f.enrollmentRepo.On("Get", ctx, accountID).Return(&authDomain.TwoFactorEnrollment{
			AccountID: accountID,
			Status:    authDomain.StatusEnrolled,
		}, nil)

		_, err := f.useCase.Setup(ctx, accountID, "user@example.com")

		assert.ErrorIs(t, err, authDomain.ErrAlreadyEnrolled)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestTwoFactorUseCaseVerify(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	pendingEnrollment := func(t *testing.T, f *twoFactorFixture) (*authDomain.TwoFactorEnrollment, string) {
		t.Helper()
		secret := "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"
		encrypted, err := f.fieldCipher.Encrypt(secret)
		require.NoError(t, err)
		return &authDomain.TwoFactorEnrollment{
			AccountID:       accountID,
			Status:          authDomain.StatusPending,
			EncryptedSecret: encrypted,
			CreatedAt:       f.now.Add(-time.Minute),
		}, secret
	}

	t.Run("valid code completes enrollment", func(t *testing.T) {
		f := newTwoFactorFixture(t)
		enrollment, secret := pendingEnrollment(t, f)

		f.enrollmentRepo.On("Get", ctx, accountID).Return(enrollment, nil)
		f.enrollmentRepo.On("Upsert", ctx, mock.MatchedBy(func(e *authDomain.TwoFactorEnrollment) bool {
			return e.Status == authDomain.StatusEnrolled && e.ConfirmedAt != nil
		})).Return(nil)

		err := f.useCase.Verify(ctx, accountID, validCodeFor(t, secret, f.now))

		require.NoError(t, err)
		f.enrollmentRepo.AssertExpectations(t)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		f := newTwoFactorFixture(t)
		enrollment, secret := pendingEnrollment(t, f)

		f.enrollmentRepo.On("Get", ctx, accountID).Return(enrollment, nil)

		wrong := "000000"
		if validCodeFor(t, secret, f.now) == wrong {
			wrong = "000001"
		}
		err := f.useCase.Verify(ctx, accountID, wrong)

		assert.ErrorIs(t, err, authDomain.ErrCodeInvalid)
		f.enrollmentRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("verify without pending enrollment fails", func(t *testing.T) {
		f := newTwoFactorFixture(t)

		f.enrollmentRepo.On("Get", ctx, accountID).Return(nil, apperrors.ErrNotFound)

		err := f.useCase.Verify(ctx, accountID, "123456")

		assert.ErrorIs(t, err, authDomain.ErrNotEnrolled)
	})

	t.Run("verify on an enrolled account fails", func(t *testing.T) {
		f := newTwoFactorFixture(t)

		f.enrollmentRepo.On("Get", ctx, accountID).Return(&authDomain.TwoFactorEnrollment{
			AccountID: accountID,
			Status:    authDomain.StatusEnrolled,
		}, nil)

		err := f.useCase.Verify(ctx, accountID, "123456")

		assert.ErrorIs(t, err, authDomain.ErrNotEnrolled)
	})
}

func TestTwoFactorUseCaseResetInit(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	t.Run("reset replaces enrolled state with a fresh pending secret", func(t *testing.T) {
		f := newTwoFactorFixture(t)

		oldSecret, err := f.fieldCipher.Encrypt("OLDSECRETOLDSECRETOLDSECRETOLDSE")
		require.NoError(t, err)

		f.accountUseCase.On("VerifyPassword", ctx, accountID, "secret-password").Return(nil)
		f.enrollmentRepo.On("Get", ctx, accountID).Return(&authDomain.TwoFactorEnrollment{
			AccountID:       accountID,
			Status:          authDomain.StatusEnrolled,
			EncryptedSecret: oldSecret,
			CreatedAt:       f.now.Add(-24 * time.Hour),
		}, nil)
		f.enrollmentRepo.On("Upsert", ctx, mock.MatchedBy(func(e *authDomain.TwoFactorEnrollment) bool {
			return e.Status == authDomain.StatusPending &&
				e.ConfirmedAt == nil &&
				e.EncryptedSecret != oldSecret
		})).Return(nil)

		output, err := f.useCase.ResetInit(ctx, accountID, "user@example.com", "secret-password")

		require.NoError(t, err)
		assert.NotEmpty(t, output.Secret)
		f.enrollmentRepo.AssertExpectations(t)
	})

	t.Run("wrong password blocks reset", func(t *testing.T) {
		f := newTwoFactorFixture(t)

		f.accountUseCase.On("VerifyPassword", ctx, accountID, "wrong-password").
			Return(authDomain.ErrPasswordInvalid)

		_, err := f.useCase.ResetInit(ctx, accountID, "user@example.com", "wrong-password")

		assert.ErrorIs(t, err, authDomain.ErrPasswordInvalid)
		f.enrollmentRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestTwoFactorUseCaseEnrollment(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	t.Run("missing row maps to not enrolled", func(t *testing.T) {
		f := newTwoFactorFixture(t)

		f.enrollmentRepo.On("Get", ctx, accountID).Return(nil, apperrors.ErrNotFound)

		enrollment, err := f.useCase.Enrollment(ctx, accountID)

		require.NoError(t, err)
		assert.Equal(t, authDomain.StatusNotEnrolled, enrollment.Status)
		assert.Equal(t, accountID, enrollment.AccountID)
		assert.False(t, enrollment.Active())
	})

	t.Run("repository errors propagate", func(t *testing.T) {
		f := newTwoFactorFixture(t)

		f.enrollmentRepo.On("Get", ctx, accountID).
			Return(nil, apperrors.New("database unavailable"))

		_, err := f.useCase.Enrollment(ctx, accountID)

		assert.Error(t, err)
	})
}
