package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

const rsaKeyBits = 2048

// RSAKeyCustodian implements KeyCustodian. It generates 2048-bit RSA keypairs,
// encodes them as PEM (PKIX for the public half, PKCS#8 for the private half),
// and wraps the private key with the symmetric field cipher so the plaintext
// key never reaches storage.
type RSAKeyCustodian struct {
	fieldCipher FieldCipher
}

// NewRSAKeyCustodian creates a custodian that wraps private keys with the
// given field cipher.
func NewRSAKeyCustodian(fieldCipher FieldCipher) *RSAKeyCustodian {
	return &RSAKeyCustodian{fieldCipher: fieldCipher}
}

// Generate creates fresh key material for the account. The caller is
// responsible for persisting it at most once per account.
func (k *RSAKeyCustodian) Generate(accountID uuid.UUID) (*cryptoDomain.AccountKeyMaterial, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keypair: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode public key: %w", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	privateDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode private key: %w", err)
	}
	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})
	defer cryptoDomain.Zero(privatePEM)

	wrapped, err := k.fieldCipher.Encrypt(string(privatePEM))
	if err != nil {
		return nil, fmt.Errorf("failed to wrap private key: %w", err)
	}

	return &cryptoDomain.AccountKeyMaterial{
		AccountID:         accountID,
		PublicKeyPEM:      string(publicPEM),
		WrappedPrivateKey: wrapped,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// Unwrap decrypts the wrapped private key and parses the PEM/PKCS#8 encoding.
func (k *RSAKeyCustodian) Unwrap(material *cryptoDomain.AccountKeyMaterial) (*rsa.PrivateKey, error) {
	privatePEM, err := k.fieldCipher.Decrypt(material.WrappedPrivateKey)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode([]byte(privatePEM))
	if block == nil {
		return nil, cryptoDomain.ErrKeyFormat
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, cryptoDomain.ErrKeyFormat
	}

	privateKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, cryptoDomain.ErrKeyFormat
	}

	return privateKey, nil
}

// PublicKey parses the stored public key PEM.
func (k *RSAKeyCustodian) PublicKey(material *cryptoDomain.AccountKeyMaterial) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(material.PublicKeyPEM))
	if block == nil {
		return nil, cryptoDomain.ErrKeyFormat
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, cryptoDomain.ErrKeyFormat
	}

	publicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, cryptoDomain.ErrKeyFormat
	}

	return publicKey, nil
}
