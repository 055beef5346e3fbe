// Package service provides the field-level ciphers and the key custodian.
// Implements AES-256-CBC for card fields, RSA-OAEP for document fields, and
// per-account RSA keypair custody with the private key wrapped under the
// symmetric master secret.
package service

import (
	"crypto/rsa"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

// FieldCipher encrypts and decrypts individual scalar fields with the
// process-wide master secret. Implementations are stateless after
// construction and safe for concurrent use.
type FieldCipher interface {
	// Encrypt encrypts plaintext with a fresh random IV. Two encryptions of
	// the same plaintext produce different outputs.
	Encrypt(plaintext string) (cryptoDomain.EncryptedField, error)

	// Decrypt decrypts a serialized field. Returns ErrDecryptFailed if the
	// field is malformed or was encrypted under a different key.
	Decrypt(field cryptoDomain.EncryptedField) (string, error)
}

// DocumentCipher encrypts fields with an account's public key and decrypts
// them with the matching private key. Randomness is governed entirely by the
// OAEP padding scheme; no IV management is involved.
type DocumentCipher interface {
	// Encrypt encrypts plaintext under the public key. Returns
	// ErrPlaintextTooLarge when plaintext exceeds the modulus limit.
	Encrypt(publicKey *rsa.PublicKey, plaintext string) (cryptoDomain.EncryptedField, error)

	// Decrypt decrypts a serialized field with the private key. Returns
	// ErrDecryptFailed on padding or format mismatch, or a wrong key.
	Decrypt(privateKey *rsa.PrivateKey, field cryptoDomain.EncryptedField) (string, error)
}

// KeyCustodian generates per-account asymmetric key material and unwraps it
// on demand.
type KeyCustodian interface {
	// Generate creates a fresh 2048-bit RSA keypair for the account and wraps
	// the private key with the symmetric field cipher.
	Generate(accountID uuid.UUID) (*cryptoDomain.AccountKeyMaterial, error)

	// Unwrap decrypts and parses the wrapped private key. Returns
	// ErrDecryptFailed when the wrap cannot be decrypted and ErrKeyFormat when
	// the decrypted payload does not parse as a private key.
	Unwrap(material *cryptoDomain.AccountKeyMaterial) (*rsa.PrivateKey, error)

	// PublicKey parses the stored public key. Returns ErrKeyFormat when the
	// stored PEM does not parse.
	PublicKey(material *cryptoDomain.AccountKeyMaterial) (*rsa.PublicKey, error)
}
