// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cardvault/internal/validation"
)

// VerifyTwoFactorRequest contains the TOTP code that completes enrollment.
type VerifyTwoFactorRequest struct {
	Code string `json:"code"`
}

// Validate checks if the verify request is valid.
func (r *VerifyTwoFactorRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code,
			validation.Required,
			customValidation.Digits,
			validation.Length(6, 6),
		),
	)
}

// ResetTwoFactorRequest contains the password re-proof required to restart
// two-factor enrollment.
type ResetTwoFactorRequest struct {
	Password string `json:"password"`
}

// Validate checks if the reset request is valid.
func (r *ResetTwoFactorRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
