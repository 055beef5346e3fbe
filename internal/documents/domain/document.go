// Package domain defines the core domain models for identity documents.
//
// Sensitive document fields are stored as EncryptedField values produced by
// the per-account asymmetric document cipher, so a stored row can only be
// read by unwrapping the owning account's private key. The note is plaintext
// and appears in list views.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

// DocumentType identifies the kind of identity document.
type DocumentType string

// Supported document types.
const (
	DocumentTypePassport       DocumentType = "passport"
	DocumentTypeIDCard         DocumentType = "id_card"
	DocumentTypeTravelPermit   DocumentType = "travel_permit"
	DocumentTypeDriversLicense DocumentType = "drivers_license"
)

// Valid reports whether the type is one of the supported document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypePassport, DocumentTypeIDCard, DocumentTypeTravelPermit, DocumentTypeDriversLicense:
		return true
	}
	return false
}

// DateFormat describes how a document's dates are rendered. Dates are stored
// as opaque encrypted strings; the format is display metadata only.
type DateFormat string

// Supported date formats.
const (
	DateFormatYMD DateFormat = "YMD"
	DateFormatMDY DateFormat = "MDY"
	DateFormatDMY DateFormat = "DMY"
)

// Valid reports whether the format is one of the supported date formats.
func (f DateFormat) Valid() bool {
	switch f {
	case DateFormatYMD, DateFormatMDY, DateFormatDMY:
		return true
	}
	return false
}

// MaxNoteLength is the maximum stored length of a document note.
const MaxNoteLength = 500

// Document represents a stored identity document with encrypted sensitive
// fields. Optional fields hold the zero EncryptedField when absent. A
// permanent document stores no encrypted expiry at all.
type Document struct {
	// ID is the unique identifier for the document.
	ID uuid.UUID
	// AccountID identifies the owning account.
	AccountID uuid.UUID
	// Type is the document kind.
	Type DocumentType
	// EncryptedHolderName is the holder's name, asymmetric-cipher encrypted.
	EncryptedHolderName cryptoDomain.EncryptedField
	// EncryptedHolderNameLatin is the optional latin transcription of the name.
	EncryptedHolderNameLatin cryptoDomain.EncryptedField
	// EncryptedNumber is the document number, asymmetric-cipher encrypted.
	EncryptedNumber cryptoDomain.EncryptedField
	// EncryptedIssueDate is the optional issue date.
	EncryptedIssueDate cryptoDomain.EncryptedField
	// EncryptedExpiryDate is the expiry date; always zero when PermanentExpiry
	// is set.
	EncryptedExpiryDate cryptoDomain.EncryptedField
	// PermanentExpiry marks a document that never expires.
	PermanentExpiry bool
	// ExpiryDateFormat is the display format for the document's dates.
	ExpiryDateFormat DateFormat
	// EncryptedIssuePlace is the optional place of issue.
	EncryptedIssuePlace cryptoDomain.EncryptedField
	// Note is a free-form, non-sensitive note.
	Note string
	// CreatedAt is the UTC creation timestamp.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last mutation.
	UpdatedAt time.Time
}

// DocumentSummary is the list-view projection: the holder name decrypted,
// the number masked, every other sensitive field withheld.
type DocumentSummary struct {
	ID           uuid.UUID
	Type         DocumentType
	HolderName   string
	MaskedNumber string
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DocumentDetails is the reveal projection with decrypted sensitive fields.
// Producing it requires step-up authentication upstream.
type DocumentDetails struct {
	ID              uuid.UUID
	Type            DocumentType
	HolderName      string
	HolderNameLatin string
	Number          string
	IssueDate       string
	ExpiryDate      string
	PermanentExpiry bool
	DateFormat      DateFormat
	IssuePlace      string
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
