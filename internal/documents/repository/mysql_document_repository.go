package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	"github.com/allisson/cardvault/internal/database"
	documentsDomain "github.com/allisson/cardvault/internal/documents/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// MySQLDocumentRepository implements document persistence for MySQL. UUIDs are
// stored as BINARY(16).
type MySQLDocumentRepository struct {
	db *sql.DB
}

// Create inserts a new document record.
func (m *MySQLDocumentRepository) Create(
	ctx context.Context,
	document *documentsDomain.Document,
) error {
	querier := database.GetTx(ctx, m.db)

	documentID, err := document.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}
	accountID, err := document.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `INSERT INTO documents (id, account_id, document_type, encrypted_holder_name,
				encrypted_holder_name_latin, encrypted_document_number, encrypted_issue_date,
				encrypted_expiry_date, expiry_date_permanent, expiry_date_format,
				encrypted_issue_place, note, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		documentID,
		accountID,
		string(document.Type),
		string(document.EncryptedHolderName),
		string(document.EncryptedHolderNameLatin),
		string(document.EncryptedNumber),
		string(document.EncryptedIssueDate),
		string(document.EncryptedExpiryDate),
		document.PermanentExpiry,
		string(document.ExpiryDateFormat),
		string(document.EncryptedIssuePlace),
		document.Note,
		document.CreatedAt,
		document.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create document")
	}
	return nil
}

// Get retrieves a document scoped to its owning account.
func (m *MySQLDocumentRepository) Get(
	ctx context.Context,
	accountID, documentID uuid.UUID,
) (*documentsDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	rawDocumentID, err := documentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal document id")
	}
	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT id, account_id, document_type, encrypted_holder_name,
				encrypted_holder_name_latin, encrypted_document_number, encrypted_issue_date,
				encrypted_expiry_date, expiry_date_permanent, expiry_date_format,
				encrypted_issue_place, note, created_at, updated_at
			  FROM documents
			  WHERE id = ? AND account_id = ?`

	row := querier.QueryRowContext(ctx, query, rawDocumentID, rawAccountID)
	document, err := scanMySQLDocument(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document")
	}
	return document, nil
}

// ListByAccount retrieves all documents of an account, newest first.
func (m *MySQLDocumentRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*documentsDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT id, account_id, document_type, encrypted_holder_name,
				encrypted_holder_name_latin, encrypted_document_number, encrypted_issue_date,
				encrypted_expiry_date, expiry_date_permanent, expiry_date_format,
				encrypted_issue_place, note, created_at, updated_at
			  FROM documents
			  WHERE account_id = ?
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, rawAccountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	defer func() {
		_ = rows.Close()
	}()

	documents := make([]*documentsDomain.Document, 0)
	for rows.Next() {
		document, err := scanMySQLDocument(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document")
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate documents")
	}

	return documents, nil
}

// Update persists the mutable fields of a document.
func (m *MySQLDocumentRepository) Update(
	ctx context.Context,
	document *documentsDomain.Document,
) error {
	querier := database.GetTx(ctx, m.db)

	rawDocumentID, err := document.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}
	rawAccountID, err := document.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `UPDATE documents
			  SET encrypted_holder_name = ?, encrypted_holder_name_latin = ?,
				  encrypted_document_number = ?, encrypted_issue_date = ?,
				  encrypted_expiry_date = ?, expiry_date_permanent = ?,
				  expiry_date_format = ?, encrypted_issue_place = ?, note = ?,
				  updated_at = ?
			  WHERE id = ? AND account_id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(document.EncryptedHolderName),
		string(document.EncryptedHolderNameLatin),
		string(document.EncryptedNumber),
		string(document.EncryptedIssueDate),
		string(document.EncryptedExpiryDate),
		document.PermanentExpiry,
		string(document.ExpiryDateFormat),
		string(document.EncryptedIssuePlace),
		document.Note,
		document.UpdatedAt,
		rawDocumentID,
		rawAccountID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update document")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a document scoped to its owning account.
func (m *MySQLDocumentRepository) Delete(
	ctx context.Context,
	accountID, documentID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	rawDocumentID, err := documentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}
	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `DELETE FROM documents WHERE id = ? AND account_id = ?`

	result, err := querier.ExecContext(ctx, query, rawDocumentID, rawAccountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check delete result")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanMySQLDocument scans a row with BINARY(16) UUID columns.
func scanMySQLDocument(scanner interface{ Scan(dest ...any) error }) (*documentsDomain.Document, error) {
	var document documentsDomain.Document
	var rawID, rawAccountID []byte
	var documentType, format string
	var holderName, holderNameLatin, number, issueDate, expiryDate, issuePlace string

	err := scanner.Scan(
		&rawID,
		&rawAccountID,
		&documentType,
		&holderName,
		&holderNameLatin,
		&number,
		&issueDate,
		&expiryDate,
		&document.PermanentExpiry,
		&format,
		&issuePlace,
		&document.Note,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := document.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal document id")
	}
	if err := document.AccountID.UnmarshalBinary(rawAccountID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}

	document.Type = documentsDomain.DocumentType(documentType)
	document.ExpiryDateFormat = documentsDomain.DateFormat(format)
	document.EncryptedHolderName = cryptoDomain.EncryptedField(holderName)
	document.EncryptedHolderNameLatin = cryptoDomain.EncryptedField(holderNameLatin)
	document.EncryptedNumber = cryptoDomain.EncryptedField(number)
	document.EncryptedIssueDate = cryptoDomain.EncryptedField(issueDate)
	document.EncryptedExpiryDate = cryptoDomain.EncryptedField(expiryDate)
	document.EncryptedIssuePlace = cryptoDomain.EncryptedField(issuePlace)
	return &document, nil
}

// NewMySQLDocumentRepository creates a new MySQL document repository.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}
