package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

// Card classification and policy error definitions.
//
// All of these are caller input errors: they are never retried by the core
// and map to 422 Unprocessable Entity at the HTTP layer.
var (
	// ErrNoDigits indicates the classifier could not extract any digits from the input.
	ErrNoDigits = errors.Wrap(errors.ErrInvalidInput, "card number contains no digits")

	// ErrNumberTooLong indicates the cleaned number exceeds the 80 digit storage cap.
	ErrNumberTooLong = errors.Wrap(errors.ErrInvalidInput, "card number too long")

	// ErrLengthInvalid indicates a known payment-scheme number outside 12-19 digits.
	ErrLengthInvalid = errors.Wrap(errors.ErrInvalidInput, "card number length invalid")

	// ErrChecksumFailed indicates a known payment-scheme number failed the Luhn check.
	ErrChecksumFailed = errors.Wrap(errors.ErrInvalidInput, "card number failed checksum")

	// ErrInvalidTransitNumber indicates a transit-classified number that is not
	// an exact 19-digit T-Union match.
	ErrInvalidTransitNumber = errors.Wrap(errors.ErrInvalidInput, "invalid transit card number")

	// ErrInvalidWalletNumber indicates a wallet-classified number that is not
	// an exact 16-digit eCNY match.
	ErrInvalidWalletNumber = errors.Wrap(errors.ErrInvalidInput, "invalid wallet number")

	// ErrCardTypeRequired indicates no card type was supplied for a network
	// that does not force one.
	ErrCardTypeRequired = errors.Wrap(errors.ErrInvalidInput, "card type required")

	// ErrInvalidCardType indicates the requested card type is not allowed for
	// the card's network.
	ErrInvalidCardType = errors.Wrap(errors.ErrInvalidInput, "invalid card type for network")
)
