package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// keyMaterialUseCase implements KeyMaterialUseCase.
type keyMaterialUseCase struct {
	custodian       cryptoService.KeyCustodian
	keyMaterialRepo KeyMaterialRepository
}

// Provision generates and persists key material for an account that has none.
func (u *keyMaterialUseCase) Provision(
	ctx context.Context,
	accountID uuid.UUID,
) (*cryptoDomain.AccountKeyMaterial, error) {
	existing, err := u.keyMaterialRepo.Get(ctx, accountID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, cryptoDomain.ErrAlreadyProvisioned
	}

	material, err := u.custodian.Generate(accountID)
	if err != nil {
		return nil, err
	}

	if err := u.keyMaterialRepo.Create(ctx, material); err != nil {
		// A concurrent caller won the insert race; the uniqueness constraint
		// is the expected signal, not a hard fault.
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, cryptoDomain.ErrAlreadyProvisioned
		}
		return nil, err
	}

	return material, nil
}

// ProvisionIfMissing returns existing material or generates it lazily. On a
// lost creation race the winner's material is re-read and returned, so all
// concurrent callers observe exactly one persisted keypair.
func (u *keyMaterialUseCase) ProvisionIfMissing(
	ctx context.Context,
	accountID uuid.UUID,
) (*cryptoDomain.AccountKeyMaterial, error) {
	material, err := u.keyMaterialRepo.Get(ctx, accountID)
	if err == nil {
		return material, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	generated, err := u.custodian.Generate(accountID)
	if err != nil {
		return nil, err
	}

	if err := u.keyMaterialRepo.Create(ctx, generated); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return u.keyMaterialRepo.Get(ctx, accountID)
		}
		return nil, err
	}

	return generated, nil
}

// Get retrieves existing key material without provisioning.
func (u *keyMaterialUseCase) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*cryptoDomain.AccountKeyMaterial, error) {
	return u.keyMaterialRepo.Get(ctx, accountID)
}

// NewKeyMaterialUseCase creates a new key material use case instance.
func NewKeyMaterialUseCase(
	custodian cryptoService.KeyCustodian,
	keyMaterialRepo KeyMaterialRepository,
) KeyMaterialUseCase {
	return &keyMaterialUseCase{
		custodian:       custodian,
		keyMaterialRepo: keyMaterialRepo,
	}
}
