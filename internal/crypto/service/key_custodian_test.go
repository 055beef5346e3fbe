package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

func newTestCustodian(t *testing.T) *RSAKeyCustodian {
	t.Helper()
	fieldCipher, err := NewAESCBCFieldCipher("test-master-secret")
	require.NoError(t, err)
	return NewRSAKeyCustodian(fieldCipher)
}

func TestRSAKeyCustodian_Generate(t *testing.T) {
	custodian := newTestCustodian(t)
	accountID := uuid.Must(uuid.NewV7())

	material, err := custodian.Generate(accountID)
	require.NoError(t, err)

	assert.Equal(t, accountID, material.AccountID)
	assert.True(t, strings.HasPrefix(material.PublicKeyPEM, "-----BEGIN PUBLIC KEY-----"))
	// The wrapped private key must be ciphertext, never PEM.
	assert.NotContains(t, string(material.WrappedPrivateKey), "PRIVATE KEY")
	assert.False(t, material.WrappedPrivateKey.IsZero())
}

func TestRSAKeyCustodian_Unwrap(t *testing.T) {
	custodian := newTestCustodian(t)
	accountID := uuid.Must(uuid.NewV7())

	t.Run("unwrapped key matches the public half", func(t *testing.T) {
		material, err := custodian.Generate(accountID)
		require.NoError(t, err)

		privateKey, err := custodian.Unwrap(material)
		require.NoError(t, err)

		publicKey, err := custodian.PublicKey(material)
		require.NoError(t, err)

		assert.True(t, privateKey.PublicKey.Equal(publicKey))
	})

	t.Run("wrong master secret fails to unwrap", func(t *testing.T) {
		material, err := custodian.Generate(accountID)
		require.NoError(t, err)

		otherCipher, err := NewAESCBCFieldCipher("another-master-secret")
		require.NoError(t, err)
		other := NewRSAKeyCustodian(otherCipher)

		_, err = other.Unwrap(material)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptFailed)
	})

	t.Run("unwrapped payload that is not a key is rejected", func(t *testing.T) {
		fieldCipher, err := NewAESCBCFieldCipher("test-master-secret")
		require.NoError(t, err)
		wrapped, err := fieldCipher.Encrypt("not a private key")
		require.NoError(t, err)

		material := &cryptoDomain.AccountKeyMaterial{
			AccountID:         accountID,
			WrappedPrivateKey: wrapped,
		}

		_, err = custodian.Unwrap(material)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyFormat)
	})
}

func TestRSAKeyCustodian_PublicKey(t *testing.T) {
	custodian := newTestCustodian(t)

	t.Run("invalid PEM is rejected", func(t *testing.T) {
		material := &cryptoDomain.AccountKeyMaterial{PublicKeyPEM: "not pem"}

		_, err := custodian.PublicKey(material)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyFormat)
	})
}

func TestRSAKeyCustodian_EndToEnd(t *testing.T) {
	// A field encrypted under the generated public key must decrypt with the
	// unwrapped private key.
	custodian := newTestCustodian(t)
	documentCipher := NewRSAOAEPDocumentCipher()

	material, err := custodian.Generate(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	publicKey, err := custodian.PublicKey(material)
	require.NoError(t, err)
	field, err := documentCipher.Encrypt(publicKey, "K1234567")
	require.NoError(t, err)

	privateKey, err := custodian.Unwrap(material)
	require.NoError(t, err)
	plaintext, err := documentCipher.Decrypt(privateKey, field)
	require.NoError(t, err)

	assert.Equal(t, "K1234567", plaintext)
}
