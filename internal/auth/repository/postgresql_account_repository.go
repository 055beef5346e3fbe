// Package repository implements persistence for accounts and two-factor
// enrollments on PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// PostgreSQLAccountRepository implements account persistence for PostgreSQL.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account. Duplicate emails map to ErrConflict.
func (p *PostgreSQLAccountRepository) Create(ctx context.Context, account *authDomain.Account) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO accounts (id, email, password_hash, api_token_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.APITokenHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Get retrieves an account by ID.
func (p *PostgreSQLAccountRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, email, password_hash, api_token_hash, created_at, updated_at
			  FROM accounts
			  WHERE id = $1`

	var account authDomain.Account
	err := querier.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID,
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
	return &account, nil
}

// GetByAPITokenHash retrieves an account by its API token hash.
func (p *PostgreSQLAccountRepository) GetByAPITokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, email, password_hash, api_token_hash, created_at, updated_at
			  FROM accounts
			  WHERE api_token_hash = $1`

	var account authDomain.Account
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&account.ID,
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
		return nil, apperrors.Wrap(err, "failed to get account by token hash")
	}
	return &account, nil
}

// isMySQLDuplicate reports whether err is a MySQL duplicate entry error.
func isMySQLDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "1062")
}

// NewPostgreSQLAccountRepository creates a new PostgreSQL account repository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}
