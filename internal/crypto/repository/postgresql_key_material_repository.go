// Package repository implements persistence for account key material.
// Repositories support both PostgreSQL and MySQL; the unique constraint on
// account_id makes concurrent provisioning race-safe.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// PostgreSQLKeyMaterialRepository implements key material persistence for PostgreSQL.
type PostgreSQLKeyMaterialRepository struct {
	db *sql.DB
}

// Create inserts key material for an account. A unique violation on
// account_id maps to ErrConflict, the expected signal for a lost
// provisioning race.
func (p *PostgreSQLKeyMaterialRepository) Create(
	ctx context.Context,
	material *cryptoDomain.AccountKeyMaterial,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO account_key_material (account_id, public_key, wrapped_private_key, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		material.AccountID,
		material.PublicKeyPEM,
		string(material.WrappedPrivateKey),
		material.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return apperrors.Wrap(err, "failed to create key material")
	}
	return nil
}

// Get retrieves the key material for an account.
func (p *PostgreSQLKeyMaterialRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*cryptoDomain.AccountKeyMaterial, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT account_id, public_key, wrapped_private_key, created_at
			  FROM account_key_material
			  WHERE account_id = $1`

	var material cryptoDomain.AccountKeyMaterial
	var wrapped string
	err := querier.QueryRowContext(ctx, query, accountID).Scan(
		&material.AccountID,
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
	material.WrappedPrivateKey = cryptoDomain.EncryptedField(wrapped)

	return &material, nil
}

// NewPostgreSQLKeyMaterialRepository creates a new PostgreSQL key material repository.
func NewPostgreSQLKeyMaterialRepository(db *sql.DB) *PostgreSQLKeyMaterialRepository {
	return &PostgreSQLKeyMaterialRepository{db: db}
}
