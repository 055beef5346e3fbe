// Package service provides the card number classifier and the card policy
// engine. Both are pure, stateless computations safe for concurrent use.
package service

import (
	"regexp"
	"strconv"
	"strings"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
)

// maxStoredNumberLength caps the digit count accepted for storage.
const maxStoredNumberLength = 80

var (
	tunionPattern   = regexp.MustCompile(`^31\d{17}$`)
	ecnyPattern     = regexp.MustCompile(`^0\d{15}$`)
	mirPattern      = regexp.MustCompile(`^220[0-4]\d{12}$`)
	amexPattern     = regexp.MustCompile(`^3[47]\d{13}$`)
	dinersPattern   = regexp.MustCompile(`^(?:30[0-5]\d{11}|3095\d{10}|36\d{12}|3[89]\d{12})$`)
	jcbPattern      = regexp.MustCompile(`^35(?:2[89]|[3-8]\d)\d{12}$`)
	unionPayPattern = regexp.MustCompile(`^62\d{14,17}$`)
	discoverPattern = regexp.MustCompile(
		`^(?:6011\d{12}|65\d{14}|64[4-9]\d{13}|622(?:12[6-9]|1[3-9]\d|[2-8]\d{2}|9(?:0\d|1\d|2[0-5]))\d{10,13})$`,
	)
	mastercardLegacyPattern = regexp.MustCompile(`^5[1-5]\d{14}$`)
	maestroPattern          = regexp.MustCompile(`^(?:50\d{10,17}|5[6-9]\d{10,17}|6\d{11,18})$`)
	visaPattern             = regexp.MustCompile(`^4\d{12}(?:\d{3}){0,2}$`)
)

// networkRule pairs a network tag with its match predicate.
type networkRule struct {
	network cardsDomain.Network
	match   func(digits string) bool
}

// networkRules is evaluated strictly in order because the BIN ranges overlap:
// the narrowest patterns come first (T-Union 31..., eCNY 0...), Maestro's
// broad 6-range must come after UnionPay and Discover, and Visa's single
// leading digit comes last. Reordering changes classification outcomes on the
// overlapping ranges, so the sequence is part of the contract — keep it a
// slice, never a map.
var networkRules = []networkRule{
	{cardsDomain.NetworkTUnion, tunionPattern.MatchString},
	{cardsDomain.NetworkECNY, ecnyPattern.MatchString},
	{cardsDomain.NetworkMir, mirPattern.MatchString},
	{cardsDomain.NetworkAmex, amexPattern.MatchString},
	{cardsDomain.NetworkDiners, dinersPattern.MatchString},
	{cardsDomain.NetworkJCB, jcbPattern.MatchString},
	{cardsDomain.NetworkUnionPay, unionPayPattern.MatchString},
	{cardsDomain.NetworkDiscover, discoverPattern.MatchString},
	{cardsDomain.NetworkMastercard, matchMastercard},
	{cardsDomain.NetworkMaestro, maestroPattern.MatchString},
	{cardsDomain.NetworkVisa, visaPattern.MatchString},
}

// matchMastercard covers the legacy 51-55 prefixes and the 2-series BIN range
// 222100-272099, both 16 digits only.
func matchMastercard(digits string) bool {
	if len(digits) != 16 {
		return false
	}
	if mastercardLegacyPattern.MatchString(digits) {
		return true
	}
	prefix, err := strconv.Atoi(digits[:6])
	if err != nil {
		return false
	}
	return prefix >= 222100 && prefix <= 272099
}

// Classifier assigns issuer networks to raw card numbers and validates them
// against network-specific storage rules.
type Classifier struct{}

// NewClassifier creates a new card number classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify strips all non-digit characters and matches the cleaned digits
// against the ordered network rules. Returns ErrNoDigits when the input holds
// no digits at all; an unmatched number classifies as NetworkUnknown.
func (c *Classifier) Classify(raw string) (cardsDomain.Network, string, error) {
	cleaned := stripNonDigits(raw)
	if cleaned == "" {
		return cardsDomain.NetworkUnknown, "", cardsDomain.ErrNoDigits
	}

	for _, rule := range networkRules {
		if rule.match(cleaned) {
			return rule.network, cleaned, nil
		}
	}

	return cardsDomain.NetworkUnknown, cleaned, nil
}

// ValidateForStorage classifies a raw number and enforces the network's
// storage rules:
//
//   - tunion requires an exact 19-digit T-Union match
//   - ecny requires an exact 16-digit eCNY match
//   - unknown accepts any 1-80 digit string (membership and store-value cards
//     follow no public scheme rules)
//   - every other network requires 12-19 digits and a passing Luhn checksum
//
// Transit and wallet numbers deliberately skip the Luhn check; those schemes
// do not use it.
func (c *Classifier) ValidateForStorage(raw string) (cardsDomain.Network, string, error) {
	cleaned := stripNonDigits(raw)
	if cleaned == "" {
		return cardsDomain.NetworkUnknown, "", cardsDomain.ErrNoDigits
	}
	if len(cleaned) > maxStoredNumberLength {
		return cardsDomain.NetworkUnknown, "", cardsDomain.ErrNumberTooLong
	}

	network, cleaned, err := c.Classify(cleaned)
	if err != nil {
		return network, "", err
	}

	switch network {
	case cardsDomain.NetworkTUnion:
		if !tunionPattern.MatchString(cleaned) {
			return network, "", cardsDomain.ErrInvalidTransitNumber
		}
		return network, cleaned, nil
	case cardsDomain.NetworkECNY:
		if !ecnyPattern.MatchString(cleaned) {
			return network, "", cardsDomain.ErrInvalidWalletNumber
		}
		return network, cleaned, nil
	case cardsDomain.NetworkUnknown:
		return network, cleaned, nil
	}

	if len(cleaned) < 12 || len(cleaned) > 19 {
		return network, "", cardsDomain.ErrLengthInvalid
	}
	if !luhnValid(cleaned) {
		return network, "", cardsDomain.ErrChecksumFailed
	}

	return network, cleaned, nil
}

// stripNonDigits removes every non-digit character from the input.
func stripNonDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// luhnValid runs the mod-10 checksum, doubling every second digit from the right.
func luhnValid(digits string) bool {
	sum := 0
	alt := false
	for i := len(digits) - 1; i >= 0; i-- {
		n := int(digits[i] - '0')
		if alt {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alt = !alt
	}
	return sum%10 == 0
}
