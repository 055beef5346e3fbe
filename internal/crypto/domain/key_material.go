package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountKeyMaterial holds the asymmetric keypair that belongs to exactly one
// account. The public key is stored in clear; the private key is always stored
// wrapped as an EncryptedField under the symmetric master secret.
//
// Material is created at account creation, or lazily on first use for
// pre-existing accounts. It is never mutated once created and is destroyed
// only with the account.
type AccountKeyMaterial struct {
	// AccountID identifies the owning account; unique per account.
	AccountID uuid.UUID
	// PublicKeyPEM is the PKIX-encoded RSA public key, stored in clear.
	PublicKeyPEM string
	// WrappedPrivateKey is the PKCS#8 PEM private key encrypted with the
	// symmetric field cipher. The plaintext key never touches storage.
	WrappedPrivateKey EncryptedField
	// CreatedAt is the UTC timestamp when the material was provisioned.
	CreatedAt time.Time
}
