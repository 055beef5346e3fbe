package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	cryptoUseCase "github.com/allisson/cardvault/internal/crypto/usecase"
	documentsDomain "github.com/allisson/cardvault/internal/documents/domain"
)

// maskedFallback replaces list fields that cannot be decrypted; the listing
// never fails because of a single unreadable row.
const maskedFallback = "****"

// documentUseCase implements DocumentUseCase.
type documentUseCase struct {
	documentRepo   DocumentRepository
	keyMaterial    cryptoUseCase.KeyMaterialUseCase
	custodian      cryptoService.KeyCustodian
	documentCipher cryptoService.DocumentCipher
}

// Create validates the input and stores the document with every sensitive
// field encrypted under the account's public key. Key material is provisioned
// lazily for accounts that predate asymmetric encryption.
func (u *documentUseCase) Create(
	ctx context.Context,
	accountID uuid.UUID,
	input CreateDocumentInput,
) (*documentsDomain.Document, error) {
	if !input.Type.Valid() {
		return nil, documentsDomain.ErrInvalidDocumentType
	}

	format := input.DateFormat
	if format == "" {
		format = documentsDomain.DateFormatYMD
	}
	if !format.Valid() {
		return nil, documentsDomain.ErrInvalidDateFormat
	}

	if !input.PermanentExpiry && strings.TrimSpace(input.ExpiryDate) == "" {
		return nil, documentsDomain.ErrExpiryRequired
	}

	material, err := u.keyMaterial.ProvisionIfMissing(ctx, accountID)
	if err != nil {
		return nil, err
	}
	publicKey, err := u.custodian.PublicKey(material)
	if err != nil {
		return nil, err
	}

	encryptedHolderName, err := u.documentCipher.Encrypt(publicKey, strings.TrimSpace(input.HolderName))
	if err != nil {
		return nil, err
	}
	encryptedNumber, err := u.documentCipher.Encrypt(publicKey, strings.TrimSpace(input.Number))
	if err != nil {
		return nil, err
	}

	encryptOptional := func(value string) (cryptoDomain.EncryptedField, error) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "", nil
		}
		return u.documentCipher.Encrypt(publicKey, trimmed)
	}

	encryptedHolderNameLatin, err := encryptOptional(input.HolderNameLatin)
	if err != nil {
		return nil, err
	}
	encryptedIssueDate, err := encryptOptional(input.IssueDate)
	if err != nil {
		return nil, err
	}
	encryptedIssuePlace, err := encryptOptional(input.IssuePlace)
	if err != nil {
		return nil, err
	}

	// A permanent document never stores an encrypted expiry, even when the
	// client sends one alongside the flag.
	var encryptedExpiryDate cryptoDomain.EncryptedField
	if !input.PermanentExpiry {
		encryptedExpiryDate, err = encryptOptional(input.ExpiryDate)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	document := &documentsDomain.Document{
		ID:                       uuid.Must(uuid.NewV7()),
		AccountID:                accountID,
		Type:                     input.Type,
		EncryptedHolderName:      encryptedHolderName,
		EncryptedHolderNameLatin: encryptedHolderNameLatin,
		EncryptedNumber:          encryptedNumber,
		EncryptedIssueDate:       encryptedIssueDate,
		EncryptedExpiryDate:      encryptedExpiryDate,
		PermanentExpiry:          input.PermanentExpiry,
		ExpiryDateFormat:         format,
		EncryptedIssuePlace:      encryptedIssuePlace,
		Note:                     truncate(strings.TrimSpace(input.Note), documentsDomain.MaxNoteLength),
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := u.documentRepo.Create(ctx, document); err != nil {
		return nil, err
	}

	return document, nil
}

// List returns the masked projection of every document of the account. A row
// whose fields no longer decrypt is shown masked rather than failing the
// whole listing.
func (u *documentUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*documentsDomain.DocumentSummary, error) {
	documents, err := u.documentRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	material, err := u.keyMaterial.ProvisionIfMissing(ctx, accountID)
	if err != nil {
		return nil, err
	}
	privateKey, err := u.custodian.Unwrap(material)
	if err != nil {
		return nil, err
	}

	summaries := make([]*documentsDomain.DocumentSummary, 0, len(documents))
	for _, document := range documents {
		summary := &documentsDomain.DocumentSummary{
			ID:           document.ID,
			Type:         document.Type,
			HolderName:   maskedFallback,
			MaskedNumber: maskedFallback,
			Note:         document.Note,
			CreatedAt:    document.CreatedAt,
			UpdatedAt:    document.UpdatedAt,
		}

		if holderName, err := u.documentCipher.Decrypt(privateKey, document.EncryptedHolderName); err == nil {
			summary.HolderName = holderName
		}
		if number, err := u.documentCipher.Decrypt(privateKey, document.EncryptedNumber); err == nil {
			summary.MaskedNumber = maskDocumentNumber(number)
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Reveal decrypts the full document record with the account's private key.
func (u *documentUseCase) Reveal(
	ctx context.Context,
	accountID, documentID uuid.UUID,
) (*documentsDomain.DocumentDetails, error) {
	document, err := u.documentRepo.Get(ctx, accountID, documentID)
	if err != nil {
		return nil, err
	}

	material, err := u.keyMaterial.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	privateKey, err := u.custodian.Unwrap(material)
	if err != nil {
		return nil, err
	}

	holderName, err := u.documentCipher.Decrypt(privateKey, document.EncryptedHolderName)
	if err != nil {
		return nil, err
	}
	number, err := u.documentCipher.Decrypt(privateKey, document.EncryptedNumber)
	if err != nil {
		return nil, err
	}

	decryptOptional := func(field cryptoDomain.EncryptedField) (string, error) {
		if field.IsZero() {
			return "", nil
		}
		return u.documentCipher.Decrypt(privateKey, field)
	}

	holderNameLatin, err := decryptOptional(document.EncryptedHolderNameLatin)
	if err != nil {
		return nil, err
	}
	issueDate, err := decryptOptional(document.EncryptedIssueDate)
	if err != nil {
		return nil, err
	}
	expiryDate, err := decryptOptional(document.EncryptedExpiryDate)
	if err != nil {
		return nil, err
	}
	issuePlace, err := decryptOptional(document.EncryptedIssuePlace)
	if err != nil {
		return nil, err
	}

	return &documentsDomain.DocumentDetails{
		ID:              document.ID,
		Type:            document.Type,
		HolderName:      holderName,
		HolderNameLatin: holderNameLatin,
		Number:          number,
		IssueDate:       issueDate,
		ExpiryDate:      expiryDate,
		PermanentExpiry: document.PermanentExpiry,
		DateFormat:      document.ExpiryDateFormat,
		IssuePlace:      issuePlace,
		Note:            document.Note,
		CreatedAt:       document.CreatedAt,
		UpdatedAt:       document.UpdatedAt,
	}, nil
}

// Update applies a partial update, re-encrypting changed fields under the
// account's public key. Optional fields are cleared by submitting an empty
// string; setting the permanent flag drops any stored expiry.
func (u *documentUseCase) Update(
	ctx context.Context,
	accountID, documentID uuid.UUID,
	input UpdateDocumentInput,
) error {
	if input.HolderName == nil && input.HolderNameLatin == nil && input.Number == nil &&
		input.IssueDate == nil && input.ExpiryDate == nil && input.PermanentExpiry == nil &&
		input.DateFormat == nil && input.IssuePlace == nil && input.Note == nil {
		return documentsDomain.ErrNoFieldsToUpdate
	}

	if input.DateFormat != nil && !input.DateFormat.Valid() {
		return documentsDomain.ErrInvalidDateFormat
	}

	document, err := u.documentRepo.Get(ctx, accountID, documentID)
	if err != nil {
		return err
	}

	material, err := u.keyMaterial.Get(ctx, accountID)
	if err != nil {
		return err
	}
	publicKey, err := u.custodian.PublicKey(material)
	if err != nil {
		return err
	}

	encryptOptional := func(value string) (cryptoDomain.EncryptedField, error) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "", nil
		}
		return u.documentCipher.Encrypt(publicKey, trimmed)
	}

	if input.HolderName != nil {
		encrypted, err := u.documentCipher.Encrypt(publicKey, strings.TrimSpace(*input.HolderName))
		if err != nil {
			return err
		}
		document.EncryptedHolderName = encrypted
	}

	if input.Number != nil {
		encrypted, err := u.documentCipher.Encrypt(publicKey, strings.TrimSpace(*input.Number))
		if err != nil {
			return err
		}
		document.EncryptedNumber = encrypted
	}

	if input.HolderNameLatin != nil {
		encrypted, err := encryptOptional(*input.HolderNameLatin)
		if err != nil {
			return err
		}
		document.EncryptedHolderNameLatin = encrypted
	}

	if input.IssueDate != nil {
		encrypted, err := encryptOptional(*input.IssueDate)
		if err != nil {
			return err
		}
		document.EncryptedIssueDate = encrypted
	}

	if input.ExpiryDate != nil {
		encrypted, err := encryptOptional(*input.ExpiryDate)
		if err != nil {
			return err
		}
		document.EncryptedExpiryDate = encrypted
	}

	if input.PermanentExpiry != nil {
		document.PermanentExpiry = *input.PermanentExpiry
	}

	// The permanent flag wins over any expiry submitted in the same request.
	if document.PermanentExpiry {
		document.EncryptedExpiryDate = ""
	}

	if input.DateFormat != nil {
		document.ExpiryDateFormat = *input.DateFormat
	}

	if input.IssuePlace != nil {
		encrypted, err := encryptOptional(*input.IssuePlace)
		if err != nil {
			return err
		}
		document.EncryptedIssuePlace = encrypted
	}

	if input.Note != nil {
		document.Note = truncate(strings.TrimSpace(*input.Note), documentsDomain.MaxNoteLength)
	}

	document.UpdatedAt = time.Now().UTC()
	return u.documentRepo.Update(ctx, document)
}

// Delete removes a single document of the account.
func (u *documentUseCase) Delete(ctx context.Context, accountID, documentID uuid.UUID) error {
	return u.documentRepo.Delete(ctx, accountID, documentID)
}

// maskDocumentNumber renders the list-view form of a document number: the
// first two and last two characters with a fixed-width masked middle. Short
// numbers are fully masked so their length is not disclosed.
func maskDocumentNumber(number string) string {
	runes := []rune(number)
	if len(runes) == 0 {
		return "********"
	}
	if len(runes) <= 4 {
		return "********"
	}
	return string(runes[:2]) + "****" + string(runes[len(runes)-2:])
}

// truncate caps s at max bytes.
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// NewDocumentUseCase creates a new document use case instance with the
// provided dependencies.
func NewDocumentUseCase(
	documentRepo DocumentRepository,
	keyMaterial cryptoUseCase.KeyMaterialUseCase,
	custodian cryptoService.KeyCustodian,
	documentCipher cryptoService.DocumentCipher,
) DocumentUseCase {
	return &documentUseCase{
		documentRepo:   documentRepo,
		keyMaterial:    keyMaterial,
		custodian:      custodian,
		documentCipher: documentCipher,
	}
}
