package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// MySQLAccountRepository implements account persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account, mapping duplicate entries to ErrConflict.
func (m *MySQLAccountRepository) Create(ctx context.Context, account *authDomain.Account) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO accounts (id, email, password_hash, api_token_hash, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	accountID, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		accountID,
		account.Email,
		account.PasswordHash,
		account.APITokenHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isMySQLDuplicate(err) {
			return apperrors.ErrConflict
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Get retrieves an account by ID.
func (m *MySQLAccountRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.Account, error) {
	rawID, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	return m.getByColumn(ctx, "id", rawID)
}

// GetByAPITokenHash retrieves an account by its API token hash.
func (m *MySQLAccountRepository) GetByAPITokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Account, error) {
	return m.getByColumn(ctx, "api_token_hash", tokenHash)
}

func (m *MySQLAccountRepository) getByColumn(
	ctx context.Context,
	column string,
	value any,
) (*authDomain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, password_hash, api_token_hash, created_at, updated_at
			  FROM accounts
			  WHERE ` + column + ` = ?`

	var account authDomain.Account
	var rawID []byte
	err := querier.QueryRowContext(ctx, query, value).Scan(
		&rawID,
		&account.Email,
		&account.PasswordHash,
		&account.APITokenHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}

	if err := account.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}
	return &account, nil
}

// NewMySQLAccountRepository creates a new MySQL account repository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}
