// Package repository implements FPS alias persistence on PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
)

// PostgreSQLFpsAccountRepository implements FPS alias persistence for PostgreSQL.
type PostgreSQLFpsAccountRepository struct {
	db *sql.DB
}

// Create inserts a new alias. The unique (account_id, fps_id) constraint maps
// to ErrConflict.
func (p *PostgreSQLFpsAccountRepository) Create(
	ctx context.Context,
	fpsAccount *fpsDomain.FpsAccount,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO fps_accounts (id, account_id, fps_id, recipient, bank, note, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		fpsAccount.ID,
		fpsAccount.AccountID,
		fpsAccount.FpsID,
		fpsAccount.Recipient,
		fpsAccount.Bank,
		fpsAccount.Note,
		fpsAccount.CreatedAt,
		fpsAccount.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return apperrors.Wrap(err, "failed to create fps account")
	}
	return nil
}

// Get retrieves an alias scoped to its owning account.
func (p *PostgreSQLFpsAccountRepository) Get(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
) (*fpsDomain.FpsAccount, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, fps_id, recipient, bank, note, created_at, updated_at
			  FROM fps_accounts
			  WHERE id = $1 AND account_id = $2`

	var fpsAccount fpsDomain.FpsAccount
	err := querier.QueryRowContext(ctx, query, fpsAccountID, accountID).Scan(
		&fpsAccount.ID,
		&fpsAccount.AccountID,
		&fpsAccount.FpsID,
		&fpsAccount.Recipient,
		&fpsAccount.Bank,
		&fpsAccount.Note,
		&fpsAccount.CreatedAt,
		&fpsAccount.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get fps account")
	}
	return &fpsAccount, nil
}

// ListByAccount retrieves all aliases of an account, newest first.
func (p *PostgreSQLFpsAccountRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*fpsDomain.FpsAccount, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, fps_id, recipient, bank, note, created_at, updated_at
			  FROM fps_accounts
			  WHERE account_id = $1
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list fps accounts")
	}
	defer func() {
		_ = rows.Close()
	}()

	fpsAccounts := make([]*fpsDomain.FpsAccount, 0)
	for rows.Next() {
		var fpsAccount fpsDomain.FpsAccount
		err := rows.Scan(
			&fpsAccount.ID,
			&fpsAccount.AccountID,
			&fpsAccount.FpsID,
			&fpsAccount.Recipient,
			&fpsAccount.Bank,
			&fpsAccount.Note,
			&fpsAccount.CreatedAt,
			&fpsAccount.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan fps account")
		}
		fpsAccounts = append(fpsAccounts, &fpsAccount)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate fps accounts")
	}

	return fpsAccounts, nil
}

// Update persists the mutable fields of an alias. The fps_id column never
// changes after creation.
func (p *PostgreSQLFpsAccountRepository) Update(
	ctx context.Context,
	fpsAccount *fpsDomain.FpsAccount,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE fps_accounts
			  SET recipient = $1, bank = $2, note = $3, updated_at = $4
			  WHERE id = $5 AND account_id = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		fpsAccount.Recipient,
		fpsAccount.Bank,
		fpsAccount.Note,
		fpsAccount.UpdatedAt,
		fpsAccount.ID,
		fpsAccount.AccountID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update fps account")
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

// Delete removes an alias scoped to its owning account.
func (p *PostgreSQLFpsAccountRepository) Delete(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM fps_accounts WHERE id = $1 AND account_id = $2`

	result, err := querier.ExecContext(ctx, query, fpsAccountID, accountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete fps account")
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

// DeleteByAccount removes all aliases of an account, returning the count.
// Used by the account purge transaction.
func (p *PostgreSQLFpsAccountRepository) DeleteByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM fps_accounts WHERE account_id = $1`

	result, err := querier.ExecContext(ctx, query, accountID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete fps accounts")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to check delete result")
	}
	return affected, nil
}

// isMySQLDuplicate reports whether err is a MySQL duplicate entry error.
func isMySQLDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "1062")
}

// NewPostgreSQLFpsAccountRepository creates a new PostgreSQL FPS alias repository.
func NewPostgreSQLFpsAccountRepository(db *sql.DB) *PostgreSQLFpsAccountRepository {
	return &PostgreSQLFpsAccountRepository{db: db}
}
