// Package repository implements card record persistence for PostgreSQL and
// MySQL. Every query is scoped by account_id so one account can never read or
// mutate another account's cards.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// PostgreSQLCardRepository implements card persistence for PostgreSQL.
type PostgreSQLCardRepository struct {
	db *sql.DB
}

// Create inserts a new card record.
func (p *PostgreSQLCardRepository) Create(ctx context.Context, card *cardsDomain.Card) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO cards (id, account_id, network, card_type, bank, encrypted_number,
				encrypted_cvv, encrypted_expiration, encrypted_cardholder, note, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		card.ID,
		card.AccountID,
		string(card.Network),
		string(card.Type),
		card.Bank,
		string(card.EncryptedNumber),
		string(card.EncryptedCVV),
		string(card.EncryptedExpiration),
		string(card.EncryptedCardholder),
		card.Note,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create card")
	}
	return nil
}

// Get retrieves a card by ID scoped to the account.
func (p *PostgreSQLCardRepository) Get(
	ctx context.Context,
	accountID, cardID uuid.UUID,
) (*cardsDomain.Card, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, network, card_type, bank, encrypted_number,
				encrypted_cvv, encrypted_expiration, encrypted_cardholder, note, created_at, updated_at
			  FROM cards
			  WHERE id = $1 AND account_id = $2`

	card, err := scanCard(querier.QueryRowContext(ctx, query, cardID, accountID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get card")
	}
	return card, nil
}

// ListByAccount retrieves all cards of an account ordered by creation time.
func (p *PostgreSQLCardRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*cardsDomain.Card, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, network, card_type, bank, encrypted_number,
				encrypted_cvv, encrypted_expiration, encrypted_cardholder, note, created_at, updated_at
			  FROM cards
			  WHERE account_id = $1
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cards")
	}
	defer func() { _ = rows.Close() }()

	var cards []*cardsDomain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan card")
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cards")
	}

	return cards, nil
}

// Update persists the mutable fields of a card.
func (p *PostgreSQLCardRepository) Update(ctx context.Context, card *cardsDomain.Card) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE cards
			  SET network = $1, card_type = $2, bank = $3, encrypted_number = $4, encrypted_cvv = $5,
				  encrypted_expiration = $6, encrypted_cardholder = $7, note = $8, updated_at = $9
			  WHERE id = $10 AND account_id = $11`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(card.Network),
		string(card.Type),
		card.Bank,
		string(card.EncryptedNumber),
		string(card.EncryptedCVV),
		string(card.EncryptedExpiration),
		string(card.EncryptedCardholder),
		card.Note,
		card.UpdatedAt,
		card.ID,
		card.AccountID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update card")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a card scoped to the account.
func (p *PostgreSQLCardRepository) Delete(ctx context.Context, accountID, cardID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM cards WHERE id = $1 AND account_id = $2`,
		cardID,
		accountID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete card")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteByAccount removes every card of the account and returns the count.
func (p *PostgreSQLCardRepository) DeleteByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM cards WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete cards")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rows, nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCard scans a card row into the domain type.
func scanCard(row rowScanner) (*cardsDomain.Card, error) {
	var card cardsDomain.Card
	var network, cardType, number, cvv, expiration, cardholder string

	err := row.Scan(
		&card.ID,
		&card.AccountID,
		&network,
		&cardType,
		&card.Bank,
		&number,
		&cvv,
		&expiration,
		&cardholder,
		&card.Note,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.Network = cardsDomain.Network(network)
	card.Type = cardsDomain.CardType(cardType)
	card.EncryptedNumber = cryptoDomain.EncryptedField(number)
	card.EncryptedCVV = cryptoDomain.EncryptedField(cvv)
	card.EncryptedExpiration = cryptoDomain.EncryptedField(expiration)
	card.EncryptedCardholder = cryptoDomain.EncryptedField(cardholder)
	return &card, nil
}

// NewPostgreSQLCardRepository creates a new PostgreSQL card repository.
func NewPostgreSQLCardRepository(db *sql.DB) *PostgreSQLCardRepository {
	return &PostgreSQLCardRepository{db: db}
}
