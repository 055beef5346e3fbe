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

// PostgreSQLEnrollmentRepository implements two-factor enrollment persistence
// for PostgreSQL.
type PostgreSQLEnrollmentRepository struct {
	db *sql.DB
}

// Get retrieves the enrollment for an account.
func (p *PostgreSQLEnrollmentRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.TwoFactorEnrollment, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT account_id, status, encrypted_secret, confirmed_at, created_at, updated_at
			  FROM two_factor_enrollments
			  WHERE account_id = $1`

	var enrollment authDomain.TwoFactorEnrollment
	var status, secret string
	err := querier.QueryRowContext(ctx, query, accountID).Scan(
		&enrollment.AccountID,
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

	enrollment.Status = authDomain.EnrollmentStatus(status)
	enrollment.EncryptedSecret = cryptoDomain.EncryptedField(secret)
	return &enrollment, nil
}

// Upsert inserts or replaces the enrollment row for an account.
func (p *PostgreSQLEnrollmentRepository) Upsert(
	ctx context.Context,
	enrollment *authDomain.TwoFactorEnrollment,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO two_factor_enrollments
				(account_id, status, encrypted_secret, confirmed_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (account_id) DO UPDATE SET
				status = EXCLUDED.status,
				encrypted_secret = EXCLUDED.encrypted_secret,
				confirmed_at = EXCLUDED.confirmed_at,
				updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		enrollment.AccountID,
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

// NewPostgreSQLEnrollmentRepository creates a new PostgreSQL enrollment repository.
func NewPostgreSQLEnrollmentRepository(db *sql.DB) *PostgreSQLEnrollmentRepository {
	return &PostgreSQLEnrollmentRepository{db: db}
}
