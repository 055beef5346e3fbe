package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

// AESCBCFieldCipher implements FieldCipher using AES-256-CBC with PKCS#7 padding.
//
// The 32-byte key is derived once, at construction, by hashing the configured
// master secret with SHA-256. Each Encrypt call generates a fresh random
// 16-byte IV, so encrypting the same plaintext twice yields different
// serialized outputs. This is a required property: the fields live in a
// shared-access table and equal ciphertexts would leak equal plaintexts.
//
// Serialized format (bit-exact contract with persisted data):
//
//	<ivHex>:<ciphertextHex>
//
// where ivHex is exactly 32 hex characters (16 bytes).
//
// Thread safety: the cipher holds only the immutable derived key and is safe
// for concurrent use from multiple request-handling goroutines.
type AESCBCFieldCipher struct {
	key []byte
}

// NewAESCBCFieldCipher derives the AES-256 key from the master secret and
// returns a ready cipher. Returns ErrMasterSecretNotSet for an empty secret.
func NewAESCBCFieldCipher(masterSecret string) (*AESCBCFieldCipher, error) {
	if masterSecret == "" {
		return nil, cryptoDomain.ErrMasterSecretNotSet
	}

	key := sha256.Sum256([]byte(masterSecret))
	return &AESCBCFieldCipher{key: key[:]}, nil
}

// Encrypt encrypts a scalar field value and serializes it as ivHex:ciphertextHex.
func (c *AESCBCFieldCipher) Encrypt(plaintext string) (cryptoDomain.EncryptedField, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	serialized := hex.EncodeToString(iv) + cryptoDomain.FieldDelimiter + hex.EncodeToString(ciphertext)
	return cryptoDomain.EncryptedField(serialized), nil
}

// Decrypt parses and decrypts a serialized field. Any malformed input (missing
// delimiter, invalid hex, wrong IV size, truncated ciphertext) and any padding
// check failure surface uniformly as ErrDecryptFailed.
func (c *AESCBCFieldCipher) Decrypt(field cryptoDomain.EncryptedField) (string, error) {
	ivHex, ciphertextHex, found := strings.Cut(string(field), cryptoDomain.FieldDelimiter)
	if !found {
		return "", cryptoDomain.ErrDecryptFailed
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return "", cryptoDomain.ErrDecryptFailed
	}

	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", cryptoDomain.ErrDecryptFailed
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", cryptoDomain.ErrDecryptFailed
	}

	return string(unpadded), nil
}

// pkcs7Pad appends PKCS#7 padding up to a whole number of blocks.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// pkcs7Unpad validates and strips PKCS#7 padding. A wrong key almost always
// produces invalid padding, which is how key mismatches are detected in CBC.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, cryptoDomain.ErrDecryptFailed
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, cryptoDomain.ErrDecryptFailed
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, cryptoDomain.ErrDecryptFailed
		}
	}

	return data[:len(data)-padLen], nil
}
