package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// MySQLKeyMaterialRepository implements key material persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support.
type MySQLKeyMaterialRepository struct {
	db *sql.DB
}

// Create inserts key material for an account, mapping duplicate entries to ErrConflict.
func (m *MySQLKeyMaterialRepository) Create(
	ctx context.Context,
	material *cryptoDomain.AccountKeyMaterial,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO account_key_material (account_id, public_key, wrapped_private_key, created_at)
			  VALUES (?, ?, ?, ?)`

	accountID, err := material.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		accountID,
		material.PublicKeyPEM,
		string(material.WrappedPrivateKey),
		material.CreatedAt,
	)
	if err != nil {
		if isMySQLDuplicate(err) {
			return apperrors.ErrConflict
		}
		return apperrors.Wrap(err, "failed to create key material")
	}
	return nil
}

// Get retrieves the key material for an account.
func (m *MySQLKeyMaterialRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*cryptoDomain.AccountKeyMaterial, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT account_id, public_key, wrapped_private_key, created_at
			  FROM account_key_material
			  WHERE account_id = ?`

	id, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	var material cryptoDomain.AccountKeyMaterial
	var rawID []byte
	var wrapped string
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rawID,
		&material.PublicKeyPEM,
		&wrapped,
		&material.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get key material")
	}

	if err := material.AccountID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}
	material.WrappedPrivateKey = cryptoDomain.EncryptedField(wrapped)

	return &material, nil
}

// isMySQLDuplicate reports whether err is a MySQL duplicate entry error.
// MySQL reports these as "Error 1062: Duplicate entry".
func isMySQLDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "1062")
}

// NewMySQLKeyMaterialRepository creates a new MySQL key material repository.
func NewMySQLKeyMaterialRepository(db *sql.DB) *MySQLKeyMaterialRepository {
	return &MySQLKeyMaterialRepository{db: db}
}
