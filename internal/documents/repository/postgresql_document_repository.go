// Package repository implements identity document persistence on PostgreSQL
// and MySQL.
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

// PostgreSQLDocumentRepository implements document persistence for PostgreSQL.
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// Create inserts a new document record.
func (p *PostgreSQLDocumentRepository) Create(
	ctx context.Context,
	document *documentsDomain.Document,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO documents (id, account_id, document_type, encrypted_holder_name,
				encrypted_holder_name_latin, encrypted_document_number, encrypted_issue_date,
				encrypted_expiry_date, expiry_date_permanent, expiry_date_format,
				encrypted_issue_place, note, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := querier.ExecContext(
		ctx,
		query,
		document.ID,
		document.AccountID,
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
func (p *PostgreSQLDocumentRepository) Get(
	ctx context.Context,
	accountID, documentID uuid.UUID,
) (*documentsDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, document_type, encrypted_holder_name,
				encrypted_holder_name_latin, encrypted_document_number, encrypted_issue_date,
				encrypted_expiry_date, expiry_date_permanent, expiry_date_format,
				encrypted_issue_place, note, created_at, updated_at
			  FROM documents
			  WHERE id = $1 AND account_id = $2`

	row := querier.QueryRowContext(ctx, query, documentID, accountID)
	document, err := scanDocument(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document")
	}
	return document, nil
}

// ListByAccount retrieves all documents of an account, newest first.
func (p *PostgreSQLDocumentRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*documentsDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, document_type, encrypted_holder_name,
				encrypted_holder_name_latin, encrypted_document_number, encrypted_issue_date,
				encrypted_expiry_date, expiry_date_permanent, expiry_date_format,
				encrypted_issue_place, note, created_at, updated_at
			  FROM documents
			  WHERE account_id = $1
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	defer func() {
		_ = rows.Close()
	}()

	documents := make([]*documentsDomain.Document, 0)
	for rows.Next() {
		document, err := scanDocument(rows)
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

// Update persists the mutable fields of a document. The document type never
// changes after creation.
func (p *PostgreSQLDocumentRepository) Update(
	ctx context.Context,
	document *documentsDomain.Document,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE documents
			  SET encrypted_holder_name = $1, encrypted_holder_name_latin = $2,
				  encrypted_document_number = $3, encrypted_issue_date = $4,
				  encrypted_expiry_date = $5, expiry_date_permanent = $6,
				  expiry_date_format = $7, encrypted_issue_place = $8, note = $9,
				  updated_at = $10
			  WHERE id = $11 AND account_id = $12`

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
		document.ID,
		document.AccountID,
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
func (p *PostgreSQLDocumentRepository) Delete(
	ctx context.Context,
	accountID, documentID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM documents WHERE id = $1 AND account_id = $2`

	result, err := querier.ExecContext(ctx, query, documentID, accountID)
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

// rowScanner abstracts sql.Row and sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument scans a document row into the domain type.
func scanDocument(row rowScanner) (*documentsDomain.Document, error) {
	var document documentsDomain.Document
	var documentType, format string
	var holderName, holderNameLatin, number, issueDate, expiryDate, issuePlace string

	err := row.Scan(
		&document.ID,
		&document.AccountID,
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

// NewPostgreSQLDocumentRepository creates a new PostgreSQL document repository.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}
