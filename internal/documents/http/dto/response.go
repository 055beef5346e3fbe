// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	documentsDomain "github.com/allisson/cardvault/internal/documents/domain"
)

// CreateDocumentResponse represents a newly stored document. Only non-sensitive
// fields are echoed back.
type CreateDocumentResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"document_type"`
	PermanentExpiry bool      `json:"expiry_date_permanent"`
	DateFormat      string    `json:"expiry_date_format"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// MapDocumentToCreateResponse converts a stored document to a create response.
func MapDocumentToCreateResponse(document *documentsDomain.Document) CreateDocumentResponse {
	return CreateDocumentResponse{
		ID:              document.ID.String(),
		Type:            string(document.Type),
		PermanentExpiry: document.PermanentExpiry,
		DateFormat:      string(document.ExpiryDateFormat),
		Note:            document.Note,
		CreatedAt:       document.CreatedAt,
	}
}

// DocumentSummaryResponse represents a document in list responses: the holder
// name decrypted, the number masked, everything else withheld until step-up.
type DocumentSummaryResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"document_type"`
	HolderName   string    `json:"holder_name"`
	MaskedNumber string    `json:"masked_number"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListDocumentsResponse represents the document list projection.
type ListDocumentsResponse struct {
	Data []DocumentSummaryResponse `json:"data"`
}

// MapSummariesToListResponse converts domain summaries to a list API response.
func MapSummariesToListResponse(summaries []*documentsDomain.DocumentSummary) ListDocumentsResponse {
	responses := make([]DocumentSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, DocumentSummaryResponse{
			ID:           summary.ID.String(),
			Type:         string(summary.Type),
			HolderName:   summary.HolderName,
			MaskedNumber: summary.MaskedNumber,
			Note:         summary.Note,
			CreatedAt:    summary.CreatedAt,
			UpdatedAt:    summary.UpdatedAt,
		})
	}
	return ListDocumentsResponse{Data: responses}
}

// DocumentDetailsResponse represents the full decrypted document.
type DocumentDetailsResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"document_type"`
	HolderName      string    `json:"holder_name"`
	HolderNameLatin string    `json:"holder_name_latin,omitempty"`
	Number          string    `json:"document_number"`
	IssueDate       string    `json:"issue_date,omitempty"`
	ExpiryDate      string    `json:"expiry_date,omitempty"`
	PermanentExpiry bool      `json:"expiry_date_permanent"`
	DateFormat      string    `json:"expiry_date_format"`
	IssuePlace      string    `json:"issue_place,omitempty"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MapDetailsToResponse converts decrypted document details to an API response.
func MapDetailsToResponse(details *documentsDomain.DocumentDetails) DocumentDetailsResponse {
	return DocumentDetailsResponse{
		ID:              details.ID.String(),
		Type:            string(details.Type),
		HolderName:      details.HolderName,
		HolderNameLatin: details.HolderNameLatin,
		Number:          details.Number,
		IssueDate:       details.IssueDate,
		ExpiryDate:      details.ExpiryDate,
		PermanentExpiry: details.PermanentExpiry,
		DateFormat:      string(details.DateFormat),
		IssuePlace:      details.IssuePlace,
		Note:            details.Note,
		CreatedAt:       details.CreatedAt,
		UpdatedAt:       details.UpdatedAt,
	}
}
