package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// MySQLEnrollmentRepository implements two-factor enrollment persistence for MySQL.
type MySQLEnrollmentRepository struct {
	db *sql.DB
}

// Get retrieves the enrollment for an account.
func (m *MySQLEnrollmentRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.TwoFactorEnrollment, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT account_id, status, encrypted_secret, confirmed_at, created_at, updated_at
			  FROM two_factor_enrollments
			  WHERE account_id = ?`

	rawID, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	var enrollment authDomain.TwoFactorEnrollment
	var rawAccountID []byte
	var status, secret string
	err = querier.QueryRowContext(ctx, query, rawID).Scan(
		&rawAccountID,
		&status,
		&secret,
		&enrollment.ConfirmedAt,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get enrollment")
	}

	if err := enrollment.AccountID.UnmarshalBinary(rawAccountID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}
	enrollment.Status = authDomain.EnrollmentStatus(status)
	enrollment.EncryptedSecret = cryptoDomain.EncryptedField(secret)
	return &enrollment, nil
}

// Upsert inserts or replaces the enrollment row for an account.
func (m *MySQLEnrollmentRepository) Upsert(
	ctx context.Context,
	enrollment *authDomain.TwoFactorEnrollment,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO two_factor_enrollments
				(account_id, status, encrypted_secret, confirmed_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				status = VALUES(status),
				encrypted_secret = VALUES(encrypted_secret),
				confirmed_at = VALUES(confirmed_at),
				updated_at = VALUES(updated_at)`

	rawID, err := enrollment.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		rawID,
		string(enrollment.Status),
		string(enrollment.EncryptedSecret),
		enrollment.ConfirmedAt,
		enrollment.CreatedAt,
		enrollment.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert enrollment")
	}
	return nil
}

// NewMySQLEnrollmentRepository creates a new MySQL enrollment repository.
func NewMySQLEnrollmentRepository(db *sql.DB) *MySQLEnrollmentRepository {
	return &MySQLEnrollmentRepository{db: db}
}
