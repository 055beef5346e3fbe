// Package usecase implements business logic orchestration for identity
// documents: per-account key provisioning, asymmetric field encryption,
// number masking, and persistence.
package usecase

import (
	"context"

	"github.com/google/uuid"

	documentsDomain "github.com/allisson/cardvault/internal/documents/domain"
)

// CreateDocumentInput carries the plaintext fields for a new document.
type CreateDocumentInput struct {
	Type            documentsDomain.DocumentType
	HolderName      string
	HolderNameLatin string
	Number          string
	IssueDate       string
	ExpiryDate      string
	PermanentExpiry bool
	DateFormat      documentsDomain.DateFormat
	IssuePlace      string
	Note            string
}

// UpdateDocumentInput carries a partial document update; nil pointers leave
// the corresponding field untouched. Optional encrypted fields are cleared by
// submitting an empty string.
type UpdateDocumentInput struct {
	HolderName      *string
	HolderNameLatin *string
	Number          *string
	IssueDate       *string
	ExpiryDate      *string
	PermanentExpiry *bool
	DateFormat      *documentsDomain.DateFormat
	IssuePlace      *string
	Note            *string
}

// DocumentUseCase defines the identity document operations.
type DocumentUseCase interface {
	// Create encrypts and stores a new document under the account's public
	// key, provisioning key material lazily for accounts that have none. No
	// step-up is required upstream.
	Create(ctx context.Context, accountID uuid.UUID, input CreateDocumentInput) (*documentsDomain.Document, error)

	// List returns the masked list projection: decrypted holder names and
	// masked numbers only.
	List(ctx context.Context, accountID uuid.UUID) ([]*documentsDomain.DocumentSummary, error)

	// Reveal decrypts and returns the full document details. Callers must
	// have passed step-up authentication.
	Reveal(ctx context.Context, accountID, documentID uuid.UUID) (*documentsDomain.DocumentDetails, error)

	// Update applies a partial update, re-encrypting changed fields under the
	// account's public key.
	Update(ctx context.Context, accountID, documentID uuid.UUID, input UpdateDocumentInput) error

	// Delete removes a single document.
	Delete(ctx context.Context, accountID, documentID uuid.UUID) error
}

// DocumentRepository defines persistence operations for document records.
type DocumentRepository interface {
	Create(ctx context.Context, document *documentsDomain.Document) error
	Get(ctx context.Context, accountID, documentID uuid.UUID) (*documentsDomain.Document, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*documentsDomain.Document, error)
	Update(ctx context.Context, document *documentsDomain.Document) error
	Delete(ctx context.Context, accountID, documentID uuid.UUID) error
}
