// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
	cardsUseCase "github.com/allisson/cardvault/internal/cards/usecase"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// CreateCardRequest contains the parameters for storing a new card.
type CreateCardRequest struct {
	Number     string `json:"number"`
	CVV        string `json:"cvv"`
	Expiration string `json:"expiration"`
	Bank       string `json:"bank"`
	Cardholder string `json:"cardholder"`
	Note       string `json:"note"`
	Type       string `json:"type"`
}

// Validate checks if the create card request is valid. Number checksum and
// network rules are enforced by the classifier; this layer only checks shape.
func (r *CreateCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Number,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.CVV,
			customValidation.Digits,
			validation.Length(3, 4),
		),
		validation.Field(&r.Expiration,
			customValidation.CardExpiration,
		),
		validation.Field(&r.Bank,
			validation.Length(0, 255),
		),
		validation.Field(&r.Cardholder,
			validation.Length(0, 255),
		),
	)
}

// ToInput converts the request to a use case input.
func (r *CreateCardRequest) ToInput() cardsUseCase.CreateCardInput {
	return cardsUseCase.CreateCardInput{
		Number:     r.Number,
		CVV:        r.CVV,
		Expiration: r.Expiration,
		Bank:       r.Bank,
		Cardholder: r.Cardholder,
		Note:       r.Note,
		Type:       cardsDomain.CardType(r.Type),
	}
}

// UpdateCardRequest contains a partial card update; absent fields leave the
// stored values untouched.
type UpdateCardRequest struct {
	Number     *string `json:"number"`
	CVV        *string `json:"cvv"`
	Expiration *string `json:"expiration"`
	Bank       *string `json:"bank"`
	Cardholder *string `json:"cardholder"`
	Note       *string `json:"note"`
	Type       *string `json:"type"`
}

// Validate checks if the update card request is valid.
func (r *UpdateCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Number,
			validation.NilOrNotEmpty,
		),
		validation.Field(&r.CVV,
			validation.When(r.CVV != nil && *r.CVV != "",
				customValidation.Digits,
				validation.Length(3, 4),
			),
		),
		validation.Field(&r.Expiration,
			validation.When(r.Expiration != nil && *r.Expiration != "",
				customValidation.CardExpiration,
			),
		),
		validation.Field(&r.Bank,
			validation.When(r.Bank != nil,
				validation.Length(0, 255),
			),
		),
		validation.Field(&r.Cardholder,
			validation.When(r.Cardholder != nil,
				validation.Length(0, 255),
			),
		),
	)
}

// ToInput converts the request to a use case input.
func (r *UpdateCardRequest) ToInput() cardsUseCase.UpdateCardInput {
	input := cardsUseCase.UpdateCardInput{
		Number:     r.Number,
		CVV:        r.CVV,
		Expiration: r.Expiration,
		Bank:       r.Bank,
		Cardholder: r.Cardholder,
		Note:       r.Note,
	}
	if r.Type != nil {
		cardType := cardsDomain.CardType(*r.Type)
		input.Type = &cardType
	}
	return input
}

// PurgeCardsRequest contains the password re-proof required to destroy all
// card data for the account.
type PurgeCardsRequest struct {
	Password string `json:"password"`
}

// Validate checks if the purge request is valid.
func (r *PurgeCardsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
