// Package domain defines accounts and two-factor enrollment entities.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a vault account. Requests authenticate with an opaque
// API token whose SHA-256 hash is stored here; the Argon2id password hash
// exists solely for re-proof on two-factor reset and account purge.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	APITokenHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
