// Package service provides authentication services: TOTP code generation and
// verification, the step-up authorization guard, Argon2id password hashing,
// and API token hashing.
package service

// TOTPService generates and verifies time-based one-time passwords.
type TOTPService interface {
	// GenerateSecret creates a new shared secret for the account and returns
	// the base32 secret plus the otpauth:// provisioning URL.
	GenerateSecret(accountEmail string) (secret string, url string, err error)

	// Verify reports whether the code is valid for the secret at the current
	// time, tolerating one period of clock skew in either direction.
	Verify(secret, code string) bool
}

// PasswordService hashes and verifies account passwords.
type PasswordService interface {
	// Hash hashes a plain password with Argon2id.
	Hash(password string) (string, error)

	// Compare performs a constant-time comparison of password and hash.
	Compare(password, hash string) bool
}

// TokenService generates and hashes opaque API tokens.
type TokenService interface {
	// GenerateToken creates a random token and returns it with its SHA-256 hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token using SHA-256, hex encoded.
	HashToken(plainToken string) string
}
