// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	documentsDomain "github.com/allisson/cardvault/internal/documents/domain"
	documentsUseCase "github.com/allisson/cardvault/internal/documents/usecase"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// CreateDocumentRequest contains the parameters for storing a new document.
// The expiry date may be omitted only when the permanent flag is set; that
// cross-field rule is enforced by the use case.
type CreateDocumentRequest struct {
	Type            string `json:"document_type"`
	HolderName      string `json:"holder_name"`
	HolderNameLatin string `json:"holder_name_latin"`
	Number          string `json:"document_number"`
	IssueDate       string `json:"issue_date"`
	ExpiryDate      string `json:"expiry_date"`
	PermanentExpiry bool   `json:"expiry_date_permanent"`
	DateFormat      string `json:"expiry_date_format"`
	IssuePlace      string `json:"issue_place"`
	Note            string `json:"note"`
}

// Validate checks if the create request is valid.
func (r *CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Type,
			validation.Required,
			validation.In(
				string(documentsDomain.DocumentTypePassport),
				string(documentsDomain.DocumentTypeIDCard),
				string(documentsDomain.DocumentTypeTravelPermit),
				string(documentsDomain.DocumentTypeDriversLicense),
			),
		),
		validation.Field(&r.HolderName,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Number,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.DateFormat,
			validation.In(
				string(documentsDomain.DateFormatYMD),
				string(documentsDomain.DateFormatMDY),
				string(documentsDomain.DateFormatDMY),
			),
		),
	)
}

// ToInput converts the request to a use case input.
func (r *CreateDocumentRequest) ToInput() documentsUseCase.CreateDocumentInput {
	return documentsUseCase.CreateDocumentInput{
		Type:            documentsDomain.DocumentType(r.Type),
		HolderName:      r.HolderName,
		HolderNameLatin: r.HolderNameLatin,
		Number:          r.Number,
		IssueDate:       r.IssueDate,
		ExpiryDate:      r.ExpiryDate,
		PermanentExpiry: r.PermanentExpiry,
		DateFormat:      documentsDomain.DateFormat(r.DateFormat),
		IssuePlace:      r.IssuePlace,
		Note:            r.Note,
	}
}

// UpdateDocumentRequest contains a partial document update; the document type
// is immutable and deliberately absent. Optional fields are cleared by
// submitting an empty string.
type UpdateDocumentRequest struct {
	HolderName      *string `json:"holder_name"`
	HolderNameLatin *string `json:"holder_name_latin"`
	Number          *string `json:"document_number"`
	IssueDate       *string `json:"issue_date"`
	ExpiryDate      *string `json:"expiry_date"`
	PermanentExpiry *bool   `json:"expiry_date_permanent"`
	DateFormat      *string `json:"expiry_date_format"`
	IssuePlace      *string `json:"issue_place"`
	Note            *string `json:"note"`
}

// Validate checks if the update request is valid.
func (r *UpdateDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.HolderName,
			validation.NilOrNotEmpty,
		),
		validation.Field(&r.Number,
			validation.NilOrNotEmpty,
		),
		validation.Field(&r.DateFormat,
			validation.When(r.DateFormat != nil, validation.In(
				string(documentsDomain.DateFormatYMD),
				string(documentsDomain.DateFormatMDY),
				string(documentsDomain.DateFormatDMY),
			)),
		),
	)
}

// ToInput converts the request to a use case input.
func (r *UpdateDocumentRequest) ToInput() documentsUseCase.UpdateDocumentInput {
	input := documentsUseCase.UpdateDocumentInput{
		HolderName:      r.HolderName,
		HolderNameLatin: r.HolderNameLatin,
		Number:          r.Number,
		IssueDate:       r.IssueDate,
		ExpiryDate:      r.ExpiryDate,
		PermanentExpiry: r.PermanentExpiry,
		IssuePlace:      r.IssuePlace,
		Note:            r.Note,
	}
	if r.DateFormat != nil {
		format := documentsDomain.DateFormat(*r.DateFormat)
		input.DateFormat = &format
	}
	return input
}
