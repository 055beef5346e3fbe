package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authService "github.com/allisson/cardvault/internal/auth/service"
	"github.com/allisson/cardvault/internal/auth/usecase"
	"github.com/allisson/cardvault/internal/auth/usecase/mocks"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

func TestAccountUseCaseCreate(t *testing.T) {
	ctx := context.Background()
	passwordService := authService.NewPasswordService()
	tokenService := authService.NewTokenService()

	t.Run("creates account and returns plain token", func(t *testing.T) {
		accountRepo := new(mocks.MockAccountRepository)
		uc := usecase.NewAccountUseCase(accountRepo, passwordService, tokenService)

		accountRepo.On("Create", ctx, mock.AnythingOfType("*domain.Account")).Return(nil)

		account, plainToken, err := uc.Create(ctx, "user@example.com", "secret-password")

		require.NoError(t, err)
		assert.Equal(t, "user@example.com", account.Email)
		assert.NotEmpty(t, plainToken)
		assert.Equal(t, tokenService.HashToken(plainToken), account.APITokenHash)
		assert.True(t, passwordService.Compare("secret-password", account.PasswordHash))
		assert.NotEqual(t, uuid.Nil, account.ID)
		accountRepo.AssertExpectations(t)
	})

	t.Run("duplicate email surfaces conflict", func(t *testing.T) {
		accountRepo := new(mocks.MockAccountRepository)
		uc := usecase.NewAccountUseCase(accountRepo, passwordService, tokenService)

		accountRepo.On("Create", ctx, mock.AnythingOfType("*domain.Account")).
			Return(apperrors.ErrConflict)

		_, _, err := uc.Create(ctx, "user@example.com", "secret-password")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestAccountUseCaseAuthenticate(t *testing.T) {
	ctx := context.Background()
	passwordService := authService.NewPasswordService()
	tokenService := authService.NewTokenService()

	t.Run("resolves account from token hash", func(t *testing.T) {
		accountRepo := new(mocks.MockAccountRepository)
		uc := usecase.NewAccountUseCase(accountRepo, passwordService, tokenService)

		account := &authDomain.Account{
			ID:        uuid.Must(uuid.NewV7()),
			Email:     "user@example.com",
			CreatedAt: time.Now().UTC(),
		}
		accountRepo.On("GetByAPITokenHash", ctx, "token-hash").Return(account, nil)

		got, err := uc.Authenticate(ctx, "token-hash")

		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
	})

	t.Run("unknown token maps to invalid token", func(t *testing.T) {
		accountRepo := new(mocks.MockAccountRepository)
		uc := usecase.NewAccountUseCase(accountRepo, passwordService, tokenService)

		accountRepo.On("GetByAPITokenHash", ctx, "token-hash").
			Return(nil, apperrors.ErrNotFound)

		_, err := uc.Authenticate(ctx, "token-hash")

		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAccountUseCaseVerifyPassword(t *testing.T) {
	ctx := context.Background()
	passwordService := authService.NewPasswordService()
	tokenService := authService.NewTokenService()
	accountID := uuid.Must(uuid.NewV7())

	hash, err := passwordService.Hash("secret-password")
	require.NoError(t, err)
	account := &authDomain.Account{ID: accountID, PasswordHash: hash}

	t.Run("correct password passes", func(t *testing.T) {
		accountRepo := new(mocks.MockAccountRepository)
		uc := usecase.NewAccountUseCase(accountRepo, passwordService, tokenService)

		accountRepo.On("Get", ctx, accountID).Return(account, nil)

		assert.NoError(t, uc.VerifyPassword(ctx, accountID, "secret-password"))
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		accountRepo := new(mocks.MockAccountRepository)
		uc := usecase.NewAccountUseCase(accountRepo, passwordService, tokenService)

		accountRepo.On("Get", ctx, accountID).Return(account, nil)

		err := uc.VerifyPassword(ctx, accountID, "wrong-password")
		assert.ErrorIs(t, err, authDomain.ErrPasswordInvalid)
	})

	t.Run("missing account propagates not found", func(t *testing.T) {
		accountRepo := new(mocks.MockAccountRepository)
		uc := usecase.NewAccountUseCase(accountRepo, passwordService, tokenService)

		accountRepo.On("Get", ctx, accountID).Return(nil, apperrors.ErrNotFound)

		err := uc.VerifyPassword(ctx, accountID, "secret-password")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
