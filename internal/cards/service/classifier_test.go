package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// TestClassifier_Classify tests network classification of cleaned numbers.
func TestClassifier_Classify(t *testing.T) {
	t.Parallel()
	classifier := NewClassifier()

	tests := []struct {
		name    string
		number  string
		network cardsDomain.Network
	}{
		{"TUnion19Digits", "3100000000000000001", cardsDomain.NetworkTUnion},
		{"ECNYLeadingZero", "0123456789012345", cardsDomain.NetworkECNY},
		{"Mir", "2200000000000004", cardsDomain.NetworkMir},
		{"Amex", "378282246310005", cardsDomain.NetworkAmex},
		{"DinersClassic", "30569309025904", cardsDomain.NetworkDiners},
		{"Diners3095", "30950000000000", cardsDomain.NetworkDiners},
		{"JCB", "3530111333300000", cardsDomain.NetworkJCB},
		{"UnionPay", "6200000000000005", cardsDomain.NetworkUnionPay},
		{"Discover6011", "6011111111111117", cardsDomain.NetworkDiscover},
		{"Discover65", "6500000000000002", cardsDomain.NetworkDiscover},
		{"Discover64Range", "6450000000000000", cardsDomain.NetworkDiscover},
		{"MastercardLegacy", "5555555555554444", cardsDomain.NetworkMastercard},
		{"MastercardTwoSeries", "2223000048400011", cardsDomain.NetworkMastercard},
		{"Maestro50Prefix", "500000000000", cardsDomain.NetworkMaestro},
		{"Maestro6Prefix", "6759649826438453", cardsDomain.NetworkMaestro},
		{"Visa16Digits", "4111111111111111", cardsDomain.NetworkVisa},
		{"Visa13Digits", "4222222222222", cardsDomain.NetworkVisa},
		{"UnknownShort", "1234", cardsDomain.NetworkUnknown},
		{"UnknownPrefix", "9999999999999999", cardsDomain.NetworkUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			network, cleaned, err := classifier.Classify(tt.number)
			assert.NoError(t, err)
			assert.Equal(t, tt.network, network)
			assert.Equal(t, tt.number, cleaned)
		})
	}

	t.Run("StripsFormattingCharacters", func(t *testing.T) {
		t.Parallel()
		network, cleaned, err := classifier.Classify("4111-1111 1111.1111")
		assert.NoError(t, err)
		assert.Equal(t, cardsDomain.NetworkVisa, network)
		assert.Equal(t, "4111111111111111", cleaned)
	})

	t.Run("Error_NoDigits", func(t *testing.T) {
		t.Parallel()
		_, _, err := classifier.Classify("not a number")
		assert.ErrorIs(t, err, cardsDomain.ErrNoDigits)
	})

	// UnionPay's broad 62 prefix runs before Discover's 622126-622925 branch,
	// so those numbers classify as UnionPay. Maestro's even broader 6 prefix
	// runs after both, so it only picks up what they rejected.
	t.Run("OrderingUnionPayBeforeDiscoverBeforeMaestro", func(t *testing.T) {
		t.Parallel()
		network, _, err := classifier.Classify("6221260000000000")
		assert.NoError(t, err)
		assert.Equal(t, cardsDomain.NetworkUnionPay, network)

		network, _, err = classifier.Classify("6300000000000000")
		assert.NoError(t, err)
		assert.Equal(t, cardsDomain.NetworkMaestro, network)
	})
}

// TestClassifier_ValidateForStorage tests storage validation across networks.
func TestClassifier_ValidateForStorage(t *testing.T) {
	t.Parallel()
	classifier := NewClassifier()

	t.Run("Success_VisaLuhnValid", func(t *testing.T) {
		t.Parallel()
		network, cleaned, err := classifier.ValidateForStorage("4111 1111 1111 1111")
		assert.NoError(t, err)
		assert.Equal(t, cardsDomain.NetworkVisa, network)
		assert.Equal(t, "4111111111111111", cleaned)
	})

	t.Run("Error_VisaChecksumFailed", func(t *testing.T) {
		t.Parallel()
		_, _, err := classifier.ValidateForStorage("4111111111111112")
		assert.ErrorIs(t, err, cardsDomain.ErrChecksumFailed)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Success_TransitSkipsLuhn", func(t *testing.T) {
		t.Parallel()
		// 19-digit T-Union numbers carry no Luhn checksum.
		network, cleaned, err := classifier.ValidateForStorage("3100000000000000001")
		assert.NoError(t, err)
		assert.Equal(t, cardsDomain.NetworkTUnion, network)
		assert.Equal(t, "3100000000000000001", cleaned)
	})

	t.Run("Success_WalletSkipsLuhn", func(t *testing.T) {
		t.Parallel()
		network, cleaned, err := classifier.ValidateForStorage("0123456789012345")
		assert.NoError(t, err)
		assert.Equal(t, cardsDomain.NetworkECNY, network)
		assert.Equal(t, "0123456789012345", cleaned)
	})

	t.Run("Success_UnknownAnyLength", func(t *testing.T) {
		t.Parallel()
		network, cleaned, err := classifier.ValidateForStorage("1")
		assert.NoError(t, err)
		assert.Equal(t, cardsDomain.NetworkUnknown, network)
		assert.Equal(t, "1", cleaned)

		long := strings.Repeat("9", 80)
		network, cleaned, err = classifier.ValidateForStorage(long)
		assert.NoError(t, err)
		assert.Equal(t, cardsDomain.NetworkUnknown, network)
		assert.Equal(t, long, cleaned)
	})

	t.Run("Error_NumberTooLong", func(t *testing.T) {
		t.Parallel()
		_, _, err := classifier.ValidateForStorage(strings.Repeat("9", 81))
		assert.ErrorIs(t, err, cardsDomain.ErrNumberTooLong)
	})

	t.Run("Error_NoDigits", func(t *testing.T) {
		t.Parallel()
		_, _, err := classifier.ValidateForStorage("----")
		assert.ErrorIs(t, err, cardsDomain.ErrNoDigits)
	})

	t.Run("Success_KnownNetworks", func(t *testing.T) {
		t.Parallel()
		// Standard scheme test numbers, all Luhn-valid.
		numbers := map[string]cardsDomain.Network{
			"378282246310005":  cardsDomain.NetworkAmex,
			"30569309025904":   cardsDomain.NetworkDiners,
			"3530111333300000": cardsDomain.NetworkJCB,
			"6200000000000005": cardsDomain.NetworkUnionPay,
			"6011111111111117": cardsDomain.NetworkDiscover,
			"5555555555554444": cardsDomain.NetworkMastercard,
			"2223000048400011": cardsDomain.NetworkMastercard,
			"6759649826438453": cardsDomain.NetworkMaestro,
			"2200000000000004": cardsDomain.NetworkMir,
		}
		for number, expected := range numbers {
			network, _, err := classifier.ValidateForStorage(number)
			assert.NoError(t, err, number)
			assert.Equal(t, expected, network, number)
		}
	})
}

// TestLuhnValid tests the checksum helper directly.
func TestLuhnValid(t *testing.T) {
	t.Parallel()

	assert.True(t, luhnValid("4111111111111111"))
	assert.True(t, luhnValid("79927398713"))
	assert.False(t, luhnValid("4111111111111112"))
	assert.False(t, luhnValid("79927398710"))
}

// TestMatchMastercard tests the two-series BIN range boundaries.
func TestMatchMastercard(t *testing.T) {
	t.Parallel()

	assert.True(t, matchMastercard("5100000000000000"))
	assert.True(t, matchMastercard("5500000000000000"))
	assert.True(t, matchMastercard("2221000000000000"))
	assert.True(t, matchMastercard("2720990000000000"))
	assert.False(t, matchMastercard("2220990000000000"))
	assert.False(t, matchMastercard("2721000000000000"))
	assert.False(t, matchMastercard("510000000000000"))
	assert.False(t, matchMastercard("51000000000000000"))
}
