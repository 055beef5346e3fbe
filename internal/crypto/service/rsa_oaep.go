package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

// RSAOAEPDocumentCipher implements DocumentCipher using RSA-OAEP with SHA-256.
//
// Unlike the symmetric field cipher there is no IV to manage: OAEP derives
// fresh randomness internally on every call, so equal plaintexts still produce
// different ciphertexts. The serialized form is the standard base64 encoding
// of the raw OAEP ciphertext with no delimiter (bit-exact contract with
// persisted data).
//
// The cipher is stateless; keys are supplied per call, which keeps decryption
// tied to a user-specific key rather than one shared secret.
type RSAOAEPDocumentCipher struct{}

// NewRSAOAEPDocumentCipher creates a new document cipher instance.
func NewRSAOAEPDocumentCipher() *RSAOAEPDocumentCipher {
	return &RSAOAEPDocumentCipher{}
}

// Encrypt encrypts plaintext under the account's public key.
//
// Plaintexts longer than modulus − 2*hashLen − 2 bytes cannot be carried by a
// single OAEP block; they are rejected with ErrPlaintextTooLarge rather than
// truncated.
func (c *RSAOAEPDocumentCipher) Encrypt(
	publicKey *rsa.PublicKey,
	plaintext string,
) (cryptoDomain.EncryptedField, error) {
	hash := sha256.New()
	if len(plaintext) > publicKey.Size()-2*hash.Size()-2 {
		return "", cryptoDomain.ErrPlaintextTooLarge
	}

	ciphertext, err := rsa.EncryptOAEP(hash, rand.Reader, publicKey, []byte(plaintext), nil)
	if err != nil {
		return "", cryptoDomain.ErrPlaintextTooLarge
	}

	return cryptoDomain.EncryptedField(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

// Decrypt decrypts a serialized field with the account's private key. Invalid
// base64, a wrong key, and padding mismatches all surface as ErrDecryptFailed.
func (c *RSAOAEPDocumentCipher) Decrypt(
	privateKey *rsa.PrivateKey,
	field cryptoDomain.EncryptedField,
) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(field))
	if err != nil {
		return "", cryptoDomain.ErrDecryptFailed
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, privateKey, ciphertext, nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptFailed
	}

	return string(plaintext), nil
}
