// Package domain defines the core domain models for payment card records.
//
// Card numbers are classified into issuer networks from public BIN ranges
// before storage; some networks force fixed field values (a transit scheme
// has no real expiry, a digital-currency wallet has no CVV). All sensitive
// fields are stored as EncryptedField values produced by the symmetric field
// cipher.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

// Network identifies the issuer network of a payment instrument.
type Network string

// Issuer networks, from public BIN ranges.
const (
	// NetworkTUnion is the China T-Union interoperable transit network (19 digits).
	NetworkTUnion Network = "tunion"
	// NetworkECNY is the digital yuan wallet scheme (16 digits, leading zero).
	NetworkECNY Network = "ecny"
	// NetworkMir is the Mir payment system (2200-2204).
	NetworkMir Network = "mir"
	// NetworkAmex is American Express (34, 37).
	NetworkAmex Network = "amex"
	// NetworkDiners is Diners Club (300-305, 3095, 36, 38-39).
	NetworkDiners Network = "diners"
	// NetworkJCB is JCB (3528-3589).
	NetworkJCB Network = "jcb"
	// NetworkUnionPay is China UnionPay (62).
	NetworkUnionPay Network = "unionpay"
	// NetworkDiscover is Discover (6011, 65, 644-649, 622126-622925).
	NetworkDiscover Network = "discover"
	// NetworkMastercard is Mastercard (51-55 and 2-series 222100-272099).
	NetworkMastercard Network = "mastercard"
	// NetworkMaestro is Maestro (50, 56-58 and parts of the 6 range).
	NetworkMaestro Network = "maestro"
	// NetworkVisa is Visa (leading 4, 13/16/19 digits).
	NetworkVisa Network = "visa"
	// NetworkUnknown is any number no pattern matches; stored without checksum rules.
	NetworkUnknown Network = "unknown"
)

// CardType is the instrument sub-type of a card.
type CardType string

// Card types. Transit cards always carry CardTypeTransit; eCNY wallets carry
// one of the four wallet tiers; every other network uses credit/debit/prepaid.
const (
	CardTypeCredit  CardType = "credit"
	CardTypeDebit   CardType = "debit"
	CardTypePrepaid CardType = "prepaid"
	CardTypeTransit CardType = "transit"

	CardTypeECNYWallet1 CardType = "ecny_wallet_1"
	CardTypeECNYWallet2 CardType = "ecny_wallet_2"
	CardTypeECNYWallet3 CardType = "ecny_wallet_3"
	CardTypeECNYWallet4 CardType = "ecny_wallet_4"
)

// Network-forced sentinel values. Re-applied on every mutation and on reads,
// which defends against rows persisted before a forced-field rule existed.
const (
	// SentinelExpiration replaces the expiry of instruments that never expire.
	SentinelExpiration = "12/99"
	// SentinelCVV replaces the CVV of eCNY wallets, which have none.
	SentinelCVV = "000"
	// TUnionBankName is the fixed operator name for transit cards; bank edits
	// are ignored for the tunion network.
	TUnionBankName = "CHINA T-UNION"
)

// MaxNoteLength is the maximum stored length of a card note.
const MaxNoteLength = 1000

// Card represents a stored payment card with encrypted sensitive fields.
type Card struct {
	// ID is the unique identifier for the card.
	ID uuid.UUID
	// AccountID identifies the owning account.
	AccountID uuid.UUID
	// Network is the classifier output; immutable except on explicit number change.
	Network Network
	// Type is the instrument sub-type, valid for Network per the policy engine.
	Type CardType
	// Bank is the issuing bank display name (fixed for transit cards).
	Bank string
	// EncryptedNumber is the card number, symmetric-cipher encrypted.
	EncryptedNumber cryptoDomain.EncryptedField
	// EncryptedCVV is the card verification value, symmetric-cipher encrypted.
	EncryptedCVV cryptoDomain.EncryptedField
	// EncryptedExpiration is the expiry, symmetric-cipher encrypted.
	EncryptedExpiration cryptoDomain.EncryptedField
	// EncryptedCardholder is the optional holder name; zero when absent.
	EncryptedCardholder cryptoDomain.EncryptedField
	// Note is a free-form, non-sensitive note.
	Note string
	// CreatedAt is the UTC creation timestamp.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last mutation.
	UpdatedAt time.Time
}

// CardSummary is the list-view projection: last four digits only, expiration
// suppressed for networks that force a sentinel.
type CardSummary struct {
	ID         uuid.UUID
	Network    Network
	Type       CardType
	Bank       string
	Last4      string
	Expiration string
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CardDetails is the reveal projection with decrypted sensitive fields.
// Producing it requires step-up authentication upstream.
type CardDetails struct {
	ID         uuid.UUID
	Network    Network
	Type       CardType
	Bank       string
	Number     string
	CVV        string
	Expiration string
	Cardholder string
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
