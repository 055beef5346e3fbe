package service

import (
	"strings"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
)

// walletTiers are the only card types valid for the eCNY network.
var walletTiers = map[cardsDomain.CardType]bool{
	cardsDomain.CardTypeECNYWallet1: true,
	cardsDomain.CardTypeECNYWallet2: true,
	cardsDomain.CardTypeECNYWallet3: true,
	cardsDomain.CardTypeECNYWallet4: true,
}

// paymentTypes are the card types valid for every ordinary payment network.
var paymentTypes = map[cardsDomain.CardType]bool{
	cardsDomain.CardTypeCredit:  true,
	cardsDomain.CardTypeDebit:   true,
	cardsDomain.CardTypePrepaid: true,
}

// CardFields carries the plaintext card fields a forced-field pass operates on.
type CardFields struct {
	CVV        string
	Expiration string
	Bank       string
}

// PolicyEngine derives and validates the instrument sub-type for a network
// and enforces network-forced field values.
type PolicyEngine struct{}

// NewPolicyEngine creates a new card policy engine.
func NewPolicyEngine() *PolicyEngine {
	return &PolicyEngine{}
}

// ResolveCardType derives the effective card type for a network.
//
// The transit network forces CardTypeTransit regardless of the request and
// never errors. The eCNY network requires one of the four wallet tiers. Every
// other network requires credit, debit, or prepaid. An empty request for a
// network that does not force a type fails with ErrCardTypeRequired.
func (p *PolicyEngine) ResolveCardType(
	network cardsDomain.Network,
	requested cardsDomain.CardType,
) (cardsDomain.CardType, error) {
	if network == cardsDomain.NetworkTUnion {
		return cardsDomain.CardTypeTransit, nil
	}

	normalized := cardsDomain.CardType(strings.ToLower(string(requested)))
	if normalized == "" {
		return "", cardsDomain.ErrCardTypeRequired
	}

	if !p.CardTypeValid(network, normalized) {
		return "", cardsDomain.ErrInvalidCardType
	}

	return normalized, nil
}

// CardTypeValid reports whether a card type is allowed for a network.
func (p *PolicyEngine) CardTypeValid(network cardsDomain.Network, cardType cardsDomain.CardType) bool {
	switch network {
	case cardsDomain.NetworkTUnion:
		return cardType == cardsDomain.CardTypeTransit
	case cardsDomain.NetworkECNY:
		return walletTiers[cardType]
	default:
		return paymentTypes[cardType]
	}
}

// ApplyForcedFields overwrites the fields a network forces and returns the
// result. Transit cards get the sentinel expiration and the fixed operator
// bank name; eCNY wallets get the sentinel CVV and expiration. The pass is
// idempotent and is run last on every create, update, and reveal so that rows
// persisted before a forced-field rule existed are still normalized.
func (p *PolicyEngine) ApplyForcedFields(
	network cardsDomain.Network,
	fields CardFields,
) CardFields {
	switch network {
	case cardsDomain.NetworkTUnion:
		fields.Expiration = cardsDomain.SentinelExpiration
		fields.Bank = cardsDomain.TUnionBankName
	case cardsDomain.NetworkECNY:
		fields.CVV = cardsDomain.SentinelCVV
		fields.Expiration = cardsDomain.SentinelExpiration
	}
	return fields
}

// FieldForced reports whether the network forces the named field, used by
// update paths to ignore caller edits to forced fields.
func (p *PolicyEngine) FieldForced(network cardsDomain.Network, field string) bool {
	switch network {
	case cardsDomain.NetworkTUnion:
		return field == "expiration" || field == "bank"
	case cardsDomain.NetworkECNY:
		return field == "expiration" || field == "cvv"
	default:
		return false
	}
}
