package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
	cardsService "github.com/allisson/cardvault/internal/cards/service"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	"github.com/allisson/cardvault/internal/database"
)

// cardUseCase implements CardUseCase.
type cardUseCase struct {
	txManager    database.TxManager
	cardRepo     CardRepository
	fpsRepo      FpsAccountRepository
	classifier   *cardsService.Classifier
	policy       *cardsService.PolicyEngine
	fieldCipher  cryptoService.FieldCipher
}

// Create validates and classifies the number, resolves the card type for the
// network, applies forced fields last, and stores the encrypted record.
func (u *cardUseCase) Create(
	ctx context.Context,
	accountID uuid.UUID,
	input CreateCardInput,
) (*cardsDomain.Card, error) {
	network, cleaned, err := u.classifier.ValidateForStorage(input.Number)
	if err != nil {
		return nil, err
	}

	cardType, err := u.policy.ResolveCardType(network, input.Type)
	if err != nil {
		return nil, err
	}

	// Forced fields are applied as the final pass over plaintext values so
	// every network rule is asserted exactly once, in one place.
	fields := u.policy.ApplyForcedFields(network, cardsService.CardFields{
		CVV:        input.CVV,
		Expiration: input.Expiration,
		Bank:       input.Bank,
	})

	encryptedNumber, err := u.fieldCipher.Encrypt(cleaned)
	if err != nil {
		return nil, err
	}
	encryptedCVV, err := u.fieldCipher.Encrypt(fields.CVV)
	if err != nil {
		return nil, err
	}
	encryptedExpiration, err := u.fieldCipher.Encrypt(fields.Expiration)
	if err != nil {
		return nil, err
	}

	var encryptedCardholder cryptoDomain.EncryptedField
	if input.Cardholder != "" {
		encryptedCardholder, err = u.fieldCipher.Encrypt(input.Cardholder)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	card := &cardsDomain.Card{
		ID:                  uuid.Must(uuid.NewV7()),
		AccountID:           accountID,
		Network:             network,
		Type:                cardType,
		Bank:                fields.Bank,
		EncryptedNumber:     encryptedNumber,
		EncryptedCVV:        encryptedCVV,
		EncryptedExpiration: encryptedExpiration,
		EncryptedCardholder: encryptedCardholder,
		Note:                truncate(input.Note, cardsDomain.MaxNoteLength),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := u.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// List returns the non-sensitive projection of every card of the account.
// A record whose number no longer decrypts is shown masked rather than
// failing the whole listing.
func (u *cardUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*cardsDomain.CardSummary, error) {
	cards, err := u.cardRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*cardsDomain.CardSummary, 0, len(cards))
	for _, card := range cards {
		summary := &cardsDomain.CardSummary{
			ID:        card.ID,
			Network:   card.Network,
			Type:      card.Type,
			Bank:      card.Bank,
			Note:      card.Note,
			CreatedAt: card.CreatedAt,
			UpdatedAt: card.UpdatedAt,
		}

		if number, err := u.fieldCipher.Decrypt(card.EncryptedNumber); err == nil && len(number) >= 4 {
			summary.Last4 = number[len(number)-4:]
		} else {
			summary.Last4 = "****"
		}

		// Networks with a sentinel expiry show nothing in the list view.
		if card.Network != cardsDomain.NetworkTUnion && card.Network != cardsDomain.NetworkECNY {
			if expiration, err := u.fieldCipher.Decrypt(card.EncryptedExpiration); err == nil {
				summary.Expiration = expiration
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Reveal decrypts the full card record. Forced fields are re-asserted on the
// decrypted values so rows that predate a forced-field rule read consistently.
func (u *cardUseCase) Reveal(
	ctx context.Context,
	accountID, cardID uuid.UUID,
) (*cardsDomain.CardDetails, error) {
	card, err := u.cardRepo.Get(ctx, accountID, cardID)
	if err != nil {
		return nil, err
	}

	number, err := u.fieldCipher.Decrypt(card.EncryptedNumber)
	if err != nil {
		return nil, err
	}
	cvv, err := u.fieldCipher.Decrypt(card.EncryptedCVV)
	if err != nil {
		return nil, err
	}
	expiration, err := u.fieldCipher.Decrypt(card.EncryptedExpiration)
	if err != nil {
		return nil, err
	}

	var cardholder string
	if !card.EncryptedCardholder.IsZero() {
		// A cardholder that no longer decrypts is omitted, not fatal; the
		// field is optional and legacy rows may predate the current secret.
		if decrypted, err := u.fieldCipher.Decrypt(card.EncryptedCardholder); err == nil {
			cardholder = decrypted
		}
	}

	fields := u.policy.ApplyForcedFields(card.Network, cardsService.CardFields{
		CVV:        cvv,
		Expiration: expiration,
		Bank:       card.Bank,
	})

	return &cardsDomain.CardDetails{
		ID:         card.ID,
		Network:    card.Network,
		Type:       card.Type,
		Bank:       fields.Bank,
		Number:     number,
		CVV:        fields.CVV,
		Expiration: fields.Expiration,
		Cardholder: cardholder,
		Note:       card.Note,
		CreatedAt:  card.CreatedAt,
		UpdatedAt:  card.UpdatedAt,
	}, nil
}

// Update applies a partial update. A number change re-classifies the card and
// forced-field rules are recomputed from the new network; without a number
// change the stored network's rules are re-asserted anyway.
func (u *cardUseCase) Update(
	ctx context.Context,
	accountID, cardID uuid.UUID,
	input UpdateCardInput,
) error {
	card, err := u.cardRepo.Get(ctx, accountID, cardID)
	if err != nil {
		return err
	}

	if input.Number != nil {
		network, cleaned, err := u.classifier.ValidateForStorage(*input.Number)
		if err != nil {
			return err
		}
		encryptedNumber, err := u.fieldCipher.Encrypt(cleaned)
		if err != nil {
			return err
		}
		card.Network = network
		card.EncryptedNumber = encryptedNumber
	}

	// Card type must stay valid for the effective network. The transit
	// network forces its type; otherwise an explicit request is validated and
	// a network change without a request requires the old type to still fit.
	if card.Network == cardsDomain.NetworkTUnion {
		card.Type = cardsDomain.CardTypeTransit
	} else if input.Type != nil {
		cardType, err := u.policy.ResolveCardType(card.Network, *input.Type)
		if err != nil {
			return err
		}
		card.Type = cardType
	} else if !u.policy.CardTypeValid(card.Network, card.Type) {
		return cardsDomain.ErrCardTypeRequired
	}

	if input.CVV != nil && !u.policy.FieldForced(card.Network, "cvv") {
		encryptedCVV, err := u.fieldCipher.Encrypt(*input.CVV)
		if err != nil {
			return err
		}
		card.EncryptedCVV = encryptedCVV
	}

	if input.Expiration != nil && !u.policy.FieldForced(card.Network, "expiration") {
		encryptedExpiration, err := u.fieldCipher.Encrypt(*input.Expiration)
		if err != nil {
			return err
		}
		card.EncryptedExpiration = encryptedExpiration
	}

	if input.Bank != nil && !u.policy.FieldForced(card.Network, "bank") {
		card.Bank = *input.Bank
	}

	if input.Cardholder != nil {
		if *input.Cardholder == "" {
			card.EncryptedCardholder = ""
		} else {
			encryptedCardholder, err := u.fieldCipher.Encrypt(*input.Cardholder)
			if err != nil {
				return err
			}
			card.EncryptedCardholder = encryptedCardholder
		}
	}

	if input.Note != nil {
		card.Note = truncate(*input.Note, cardsDomain.MaxNoteLength)
	}

	if err := u.applyForcedFields(card); err != nil {
		return err
	}

	card.UpdatedAt = time.Now().UTC()
	return u.cardRepo.Update(ctx, card)
}

// applyForcedFields runs the centralized forced-field pass over the encrypted
// record, re-encrypting the sentinels for the card's network. Running it last
// on every mutation keeps all code paths convergent.
func (u *cardUseCase) applyForcedFields(card *cardsDomain.Card) error {
	if card.Network != cardsDomain.NetworkTUnion && card.Network != cardsDomain.NetworkECNY {
		return nil
	}

	fields := u.policy.ApplyForcedFields(card.Network, cardsService.CardFields{Bank: card.Bank})
	card.Bank = fields.Bank

	if fields.Expiration != "" {
		encryptedExpiration, err := u.fieldCipher.Encrypt(fields.Expiration)
		if err != nil {
			return err
		}
		card.EncryptedExpiration = encryptedExpiration
	}
	if fields.CVV != "" {
		encryptedCVV, err := u.fieldCipher.Encrypt(fields.CVV)
		if err != nil {
			return err
		}
		card.EncryptedCVV = encryptedCVV
	}

	return nil
}

// Delete removes a single card of the account.
func (u *cardUseCase) Delete(ctx context.Context, accountID, cardID uuid.UUID) error {
	return u.cardRepo.Delete(ctx, accountID, cardID)
}

// Purge removes all cards and FPS aliases of the account in one transaction.
func (u *cardUseCase) Purge(
	ctx context.Context,
	accountID uuid.UUID,
) (int64, int64, error) {
	var cards, aliases int64

	err := u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		deleted, err := u.cardRepo.DeleteByAccount(txCtx, accountID)
		if err != nil {
			return err
		}
		cards = deleted

		deleted, err = u.fpsRepo.DeleteByAccount(txCtx, accountID)
		if err != nil {
			return err
		}
		aliases = deleted

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return cards, aliases, nil
}

// truncate caps s at max bytes.
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// NewCardUseCase creates a new card use case instance with the provided dependencies.
func NewCardUseCase(
	txManager database.TxManager,
	cardRepo CardRepository,
	fpsRepo FpsAccountRepository,
	classifier *cardsService.Classifier,
	policy *cardsService.PolicyEngine,
	fieldCipher cryptoService.FieldCipher,
) CardUseCase {
	return &cardUseCase{
		txManager:   txManager,
		cardRepo:    cardRepo,
		fpsRepo:     fpsRepo,
		classifier:  classifier,
		policy:      policy,
		fieldCipher: fieldCipher,
	}
}
