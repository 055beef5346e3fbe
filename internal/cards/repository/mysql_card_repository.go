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

// MySQLCardRepository implements card persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLCardRepository struct {
	db *sql.DB
}

// Create inserts a new card record.
func (m *MySQLCardRepository) Create(ctx context.Context, card *cardsDomain.Card) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO cards (id, account_id, network, card_type, bank, encrypted_number,
				encrypted_cvv, encrypted_expiration, encrypted_cardholder, note, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	cardID, err := card.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal card id")
	}
	accountID, err := card.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		cardID,
		accountID,
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
func (m *MySQLCardRepository) Get(
	ctx context.Context,
	accountID, cardID uuid.UUID,
) (*cardsDomain.Card, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, account_id, network, card_type, bank, encrypted_number,
				encrypted_cvv, encrypted_expiration, encrypted_cardholder, note, created_at, updated_at
			  FROM cards
			  WHERE id = ? AND account_id = ?`

	rawCardID, err := cardID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal card id")
	}
	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	card, err := scanMySQLCard(querier.QueryRowContext(ctx, query, rawCardID, rawAccountID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get card")
	}
	return card, nil
}

// ListByAccount retrieves all cards of an account ordered by creation time.
func (m *MySQLCardRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*cardsDomain.Card, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, account_id, network, card_type, bank, encrypted_number,
				encrypted_cvv, encrypted_expiration, encrypted_cardholder, note, created_at, updated_at
			  FROM cards
			  WHERE account_id = ?
			  ORDER BY created_at`

	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	rows, err := querier.QueryContext(ctx, query, rawAccountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cards")
	}
	defer func() { _ = rows.Close() }()

	var cards []*cardsDomain.Card
	for rows.Next() {
		card, err := scanMySQLCard(rows)
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
func (m *MySQLCardRepository) Update(ctx context.Context, card *cardsDomain.Card) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE cards
			  SET network = ?, card_type = ?, bank = ?, encrypted_number = ?, encrypted_cvv = ?,
				  encrypted_expiration = ?, encrypted_cardholder = ?, note = ?, updated_at = ?
			  WHERE id = ? AND account_id = ?`

	cardID, err := card.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal card id")
	}
	accountID, err := card.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

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
		cardID,
		accountID,
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
func (m *MySQLCardRepository) Delete(ctx context.Context, accountID, cardID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	rawCardID, err := cardID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal card id")
	}
	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM cards WHERE id = ? AND account_id = ?`,
		rawCardID,
		rawAccountID,
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
func (m *MySQLCardRepository) DeleteByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	rawAccountID, err := accountID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal account id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM cards WHERE account_id = ?`, rawAccountID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete cards")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rows, nil
}

// scanMySQLCard scans a card row, decoding BINARY(16) UUID columns.
func scanMySQLCard(row rowScanner) (*cardsDomain.Card, error) {
	var card cardsDomain.Card
	var rawID, rawAccountID []byte
	var network, cardType, number, cvv, expiration, cardholder string

	err := row.Scan(
		&rawID,
		&rawAccountID,
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

	if err := card.ID.UnmarshalBinary(rawID); err != nil {
		return nil, err
	}
	if err := card.AccountID.UnmarshalBinary(rawAccountID); err != nil {
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

// NewMySQLCardRepository creates a new MySQL card repository.
func NewMySQLCardRepository(db *sql.DB) *MySQLCardRepository {
	return &MySQLCardRepository{db: db}
}
