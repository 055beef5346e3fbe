package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors to
// provide context for cryptographic failures. None of them is recovered
// internally; they propagate to the calling layer, which maps them to
// user-facing responses. A decrypt failure is always fatal to the single
// operation and is never substituted with a placeholder value by the ciphers
// themselves.
var (
	// ErrDecryptFailed indicates a field could not be decrypted.
	//
	// Causes include a malformed serialized field (missing delimiter, invalid
	// hex or base64), a wrong key, tampered ciphertext, or a padding check
	// failure. The specific cause is not disclosed to avoid aiding attackers.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDecryptFailed = errors.Wrap(errors.ErrInvalidInput, "decrypt failed")

	// ErrKeyFormat indicates an unwrapped payload did not parse as a private key.
	//
	// Returned by the key custodian when the symmetric decryption succeeded but
	// the plaintext is not a valid PEM/PKCS#8 RSA private key.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrKeyFormat = errors.Wrap(errors.ErrInvalidInput, "invalid key format")

	// ErrPlaintextTooLarge indicates an asymmetric encryption input exceeds the
	// modulus-minus-padding-overhead limit. The cipher rejects the input
	// explicitly rather than truncating it.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrPlaintextTooLarge = errors.Wrap(errors.ErrInvalidInput, "plaintext too large for key")

	// ErrAlreadyProvisioned indicates key material already exists for the
	// account. Losing callers of a concurrent provision race observe this and
	// must re-read the winner's material rather than overwrite it.
	//
	// HTTP Status: 409 Conflict
	ErrAlreadyProvisioned = errors.Wrap(errors.ErrConflict, "key material already provisioned")

	// ErrMasterSecretNotSet indicates no master secret was configured at process start.
	ErrMasterSecretNotSet = errors.New("master secret not set")
)
