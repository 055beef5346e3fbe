// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

var (
	// expirationRegex matches MM/YY card expirations.
	expirationRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

	// digitsRegex matches strings made up of digits only.
	digitsRegex = regexp.MustCompile(`^\d+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that a string has no leading or trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// Digits validates that a string contains only decimal digits.
var Digits = validation.NewStringRuleWithError(
	func(s string) bool {
		return digitsRegex.MatchString(s)
	},
	validation.NewError("validation_digits", "must contain only digits"),
)

// CardExpiration validates the MM/YY expiration format.
var CardExpiration = validation.NewStringRuleWithError(
	func(s string) bool {
		return expirationRegex.MatchString(s)
	},
	validation.NewError("validation_card_expiration", "must be in MM/YY format"),
)
