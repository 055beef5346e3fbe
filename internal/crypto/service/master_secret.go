package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	"github.com/allisson/cardvault/internal/config"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// LoadMasterSecret resolves the symmetric master secret at process start.
//
// When MASTER_SECRET_KMS_KEY_URI is configured, the base64
// MASTER_SECRET_CIPHERTEXT is unwrapped with a gocloud.dev secrets keeper
// (gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://).
// Otherwise the plain MASTER_SECRET value is used as-is.
func LoadMasterSecret(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.MasterSecretKMSKeyURI == "" {
		if cfg.MasterSecret == "" {
			return "", cryptoDomain.ErrMasterSecretNotSet
		}
		return cfg.MasterSecret, nil
	}

	keeper, err := secrets.OpenKeeper(ctx, cfg.MasterSecretKMSKeyURI)
	if err != nil {
		return "", fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() { _ = keeper.Close() }()

	ciphertext, err := base64.StdEncoding.DecodeString(cfg.MasterSecretCiphertext)
	if err != nil {
		return "", fmt.Errorf("invalid master secret ciphertext: %w", err)
	}

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt master secret: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	if len(plaintext) == 0 {
		return "", cryptoDomain.ErrMasterSecretNotSet
	}

	return string(plaintext), nil
}
