package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
)

// MySQLFpsAccountRepository implements FPS alias persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLFpsAccountRepository struct {
	db *sql.DB
}

// Create inserts a new alias, mapping duplicate (account_id, fps_id) entries
// to ErrConflict.
func (m *MySQLFpsAccountRepository) Create(
	ctx context.Context,
	fpsAccount *fpsDomain.FpsAccount,
) error {
	querier := database.GetTx(ctx, m.db)

	fpsAccountID, err := fpsAccount.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal fps account id")
	}
	accountID, err := fpsAccount.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `INSERT INTO fps_accounts (id, account_id, fps_id, recipient, bank, note, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		fpsAccountID,
		accountID,
		fpsAccount.FpsID,
		fpsAccount.Recipient,
		fpsAccount.Bank,
		fpsAccount.Note,
		fpsAccount.CreatedAt,
		fpsAccount.UpdatedAt,
	)
	if err != nil {
		if isMySQLDuplicate(err) {
			return apperrors.ErrConflict
		}
		return apperrors.Wrap(err, "failed to create fps account")
	}
	return nil
}

// Get retrieves an alias scoped to its owning account.
func (m *MySQLFpsAccountRepository) Get(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
) (*fpsDomain.FpsAccount, error) {
	querier := database.GetTx(ctx, m.db)

	rawFpsAccountID, err := fpsAccountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal fps account id")
	}
	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT id, account_id, fps_id, recipient, bank, note, created_at, updated_at
			  FROM fps_accounts
			  WHERE id = ? AND account_id = ?`

	row := querier.QueryRowContext(ctx, query, rawFpsAccountID, rawAccountID)
	fpsAccount, err := scanMySQLFpsAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get fps account")
	}
	return fpsAccount, nil
}

// ListByAccount retrieves all aliases of an account, newest first.
func (m *MySQLFpsAccountRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*fpsDomain.FpsAccount, error) {
	querier := database.GetTx(ctx, m.db)

	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT id, account_id, fps_id, recipient, bank, note, created_at, updated_at
			  FROM fps_accounts
			  WHERE account_id = ?
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, rawAccountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list fps accounts")
	}
	defer func() {
		_ = rows.Close()
	}()

	fpsAccounts := make([]*fpsDomain.FpsAccount, 0)
	for rows.Next() {
		fpsAccount, err := scanMySQLFpsAccount(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan fps account")
		}
		fpsAccounts = append(fpsAccounts, fpsAccount)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate fps accounts")
	}

	return fpsAccounts, nil
}

// Update persists the mutable fields of an alias.
func (m *MySQLFpsAccountRepository) Update(
	ctx context.Context,
	fpsAccount *fpsDomain.FpsAccount,
) error {
	querier := database.GetTx(ctx, m.db)

	rawFpsAccountID, err := fpsAccount.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal fps account id")
	}
	rawAccountID, err := fpsAccount.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `UPDATE fps_accounts
			  SET recipient = ?, bank = ?, note = ?, updated_at = ?
			  WHERE id = ? AND account_id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		fpsAccount.Recipient,
		fpsAccount.Bank,
		fpsAccount.Note,
		fpsAccount.UpdatedAt,
		rawFpsAccountID,
		rawAccountID,
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
func (m *MySQLFpsAccountRepository) Delete(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	rawFpsAccountID, err := fpsAccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal fps account id")
	}
	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `DELETE FROM fps_accounts WHERE id = ? AND account_id = ?`

	result, err := querier.ExecContext(ctx, query, rawFpsAccountID, rawAccountID)
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
func (m *MySQLFpsAccountRepository) DeleteByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `DELETE FROM fps_accounts WHERE account_id = ?`

	result, err := querier.ExecContext(ctx, query, rawAccountID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete fps accounts")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to check delete result")
	}
	return affected, nil
}

// scanMySQLFpsAccount scans a row with BINARY(16) UUID columns.
func scanMySQLFpsAccount(scanner interface{ Scan(dest ...any) error }) (*fpsDomain.FpsAccount, error) {
	var fpsAccount fpsDomain.FpsAccount
	var rawID, rawAccountID []byte

	err := scanner.Scan(
		&rawID,
		&rawAccountID,
		&fpsAccount.FpsID,
		&fpsAccount.Recipient,
		&fpsAccount.Bank,
		&fpsAccount.Note,
		&fpsAccount.CreatedAt,
		&fpsAccount.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := fpsAccount.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal fps account id")
	}
	if err := fpsAccount.AccountID.UnmarshalBinary(rawAccountID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}
	return &fpsAccount, nil
}

// NewMySQLFpsAccountRepository creates a new MySQL FPS alias repository.
func NewMySQLFpsAccountRepository(db *sql.DB) *MySQLFpsAccountRepository {
	return &MySQLFpsAccountRepository{db: db}
}
