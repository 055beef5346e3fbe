package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

// Document validation error definitions.
var (
	// ErrInvalidDocumentType indicates an unsupported document type.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidDocumentType = errors.Wrap(errors.ErrInvalidInput, "invalid document type")

	// ErrInvalidDateFormat indicates an unsupported date format.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidDateFormat = errors.Wrap(errors.ErrInvalidInput, "invalid date format")

	// ErrExpiryRequired indicates a document that is not permanent was
	// submitted without an expiry date.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrExpiryRequired = errors.Wrap(errors.ErrInvalidInput, "expiry date or permanent flag required")

	// ErrNoFieldsToUpdate indicates an update request with no updatable fields.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrNoFieldsToUpdate = errors.Wrap(errors.ErrInvalidInput, "no fields to update")
)
