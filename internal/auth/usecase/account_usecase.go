package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authService "github.com/allisson/cardvault/internal/auth/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	accountRepo     AccountRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
}

// Create registers an account and returns the plain API token once.
func (u *accountUseCase) Create(
	ctx context.Context,
	email, password string,
) (*authDomain.Account, string, error) {
	passwordHash, err := u.passwordService.Hash(password)
	if err != nil {
		return nil, "", err
	}

	plainToken, tokenHash, err := u.tokenService.GenerateToken()
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	account := &authDomain.Account{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        email,
		PasswordHash: passwordHash,
		APITokenHash: tokenHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.accountRepo.Create(ctx, account); err != nil {
		return nil, "", err
	}

	return account, plainToken, nil
}

// Authenticate resolves an account from an API token hash.
func (u *accountUseCase) Authenticate(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Account, error) {
	account, err := u.accountRepo.GetByAPITokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}
	return account, nil
}

// VerifyPassword re-proves the account password.
func (u *accountUseCase) VerifyPassword(
	ctx context.Context,
	accountID uuid.UUID,
	password string,
) error {
	account, err := u.accountRepo.Get(ctx, accountID)
	if err != nil {
		return err
	}

	if !u.passwordService.Compare(password, account.PasswordHash) {
		return authDomain.ErrPasswordInvalid
	}
	return nil
}

// NewAccountUseCase creates a new account use case instance.
func NewAccountUseCase(
	accountRepo AccountRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) AccountUseCase {
	return &accountUseCase{
		accountRepo:     accountRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}
