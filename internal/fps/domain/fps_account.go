// Package domain defines the models for instant-payment (FPS) account aliases.
//
// An alias maps a short numeric FPS ID to a recipient and bank so transfers
// can be addressed without exposing a full account number. The alias fields
// are not encrypted, but the note and full detail view are only served after
// step-up authentication.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

// Field length caps, applied by truncation on write.
const (
	MaxRecipientLength = 100
	MaxBankLength      = 100
	MaxNoteLength      = 500
)

// ErrFpsIDInvalid indicates an FPS ID that is not 8 to 12 digits.
var ErrFpsIDInvalid = apperrors.Wrap(apperrors.ErrInvalidInput, "fps id must be 8 to 12 digits")

// ErrNoFieldsToUpdate indicates an update request with no updatable fields.
var ErrNoFieldsToUpdate = apperrors.Wrap(apperrors.ErrInvalidInput, "no fields to update")

// FpsAccount represents a stored instant-payment alias. FpsID is unique per
// account and immutable after creation.
type FpsAccount struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	FpsID     string
	Recipient string
	Bank      string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FpsSummary is the list-view projection; the note is withheld until step-up.
type FpsSummary struct {
	ID        uuid.UUID
	FpsID     string
	Recipient string
	Bank      string
	CreatedAt time.Time
}

// KnownBanks is the curated list of banks offered by the client picker,
// in display order.
var KnownBanks = []string{
	"HSBC",
	"HANG SENG",
	"STANDARD CHARTERED",
	"BOC",
	"ICBC",
	"CCB",
	"BANK OF COMMUNICATIONS",
	"CITIBANK",
	"DBS",
	"BANK OF EAST ASIA",
	"CHINA CITIC BANK",
	"CHONG HING BANK",
	"DAH SING BANK",
	"FUBON BANK",
	"PUBLIC BANK",
	"OCBC WING HANG",
	"SHANGHAI COMMERCIAL BANK",
	"CMB WING LUNG BANK",
	"NANYANG COMMERCIAL BANK",
	"TAI SANG BANK",
}
