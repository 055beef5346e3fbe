// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	fpsUseCase "github.com/allisson/cardvault/internal/fps/usecase"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// CreateFpsRequest contains the parameters for storing a new FPS alias.
type CreateFpsRequest struct {
	FpsID     string `json:"fps_id"`
	Recipient string `json:"recipient"`
	Bank      string `json:"bank"`
	Note      string `json:"note"`
}

// Validate checks if the create request is valid.
func (r *CreateFpsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FpsID,
			validation.Required,
			customValidation.Digits,
			validation.Length(8, 12),
		),
		validation.Field(&r.Recipient,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Bank,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ToInput converts the request to a use case input.
func (r *CreateFpsRequest) ToInput() fpsUseCase.CreateFpsInput {
	return fpsUseCase.CreateFpsInput{
		FpsID:     r.FpsID,
		Recipient: r.Recipient,
		Bank:      r.Bank,
		Note:      r.Note,
	}
}

// UpdateFpsRequest contains a partial alias update; the FPS ID is immutable
// and deliberately absent.
type UpdateFpsRequest struct {
	Recipient *string `json:"recipient"`
	Bank      *string `json:"bank"`
	Note      *string `json:"note"`
}

// Validate checks if the update request is valid.
func (r *UpdateFpsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Recipient,
			validation.NilOrNotEmpty,
		),
		validation.Field(&r.Bank,
			validation.NilOrNotEmpty,
		),
	)
}

// ToInput converts the request to a use case input.
func (r *UpdateFpsRequest) ToInput() fpsUseCase.UpdateFpsInput {
	return fpsUseCase.UpdateFpsInput{
		Recipient: r.Recipient,
		Bank:      r.Bank,
		Note:      r.Note,
	}
}
