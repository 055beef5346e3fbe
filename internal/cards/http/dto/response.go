// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
)

// CreateCardResponse contains the non-sensitive projection of a newly stored card.
type CreateCardResponse struct {
	ID        string    `json:"id"`
	Network   string    `json:"network"`
	Type      string    `json:"type"`
	Bank      string    `json:"bank,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MapCardToCreateResponse converts a stored card to a creation response.
func MapCardToCreateResponse(card *cardsDomain.Card) CreateCardResponse {
	return CreateCardResponse{
		ID:        card.ID.String(),
		Network:   string(card.Network),
		Type:      string(card.Type),
		Bank:      card.Bank,
		Note:      card.Note,
		CreatedAt: card.CreatedAt,
	}
}

// CardSummaryResponse represents a card in list responses: last four digits
// only, expiration omitted for networks that force a sentinel.
type CardSummaryResponse struct {
	ID         string    `json:"id"`
	Network    string    `json:"network"`
	Type       string    `json:"type"`
	Bank       string    `json:"bank,omitempty"`
	Last4      string    `json:"last4"`
	Expiration string    `json:"expiration,omitempty"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListCardsResponse represents the card list projection.
type ListCardsResponse struct {
	Data []CardSummaryResponse `json:"data"`
}

// MapSummariesToListResponse converts domain summaries to a list API response.
func MapSummariesToListResponse(summaries []*cardsDomain.CardSummary) ListCardsResponse {
	responses := make([]CardSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, CardSummaryResponse{
			ID:         summary.ID.String(),
			Network:    string(summary.Network),
			Type:       string(summary.Type),
			Bank:       summary.Bank,
			Last4:      summary.Last4,
			Expiration: summary.Expiration,
			Note:       summary.Note,
			CreatedAt:  summary.CreatedAt,
			UpdatedAt:  summary.UpdatedAt,
		})
	}
	return ListCardsResponse{Data: responses}
}

// CardDetailsResponse represents the full decrypted card. Producing it
// requires step-up authentication upstream.
type CardDetailsResponse struct {
	ID         string    `json:"id"`
	Network    string    `json:"network"`
	Type       string    `json:"type"`
	Bank       string    `json:"bank,omitempty"`
	Number     string    `json:"number"`
	CVV        string    `json:"cvv"`
	Expiration string    `json:"expiration"`
	Cardholder string    `json:"cardholder,omitempty"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MapDetailsToResponse converts decrypted card details to an API response.
func MapDetailsToResponse(details *cardsDomain.CardDetails) CardDetailsResponse {
	return CardDetailsResponse{
		ID:         details.ID.String(),
		Network:    string(details.Network),
		Type:       string(details.Type),
		Bank:       details.Bank,
		Number:     details.Number,
		CVV:        details.CVV,
		Expiration: details.Expiration,
		Cardholder: details.Cardholder,
		Note:       details.Note,
		CreatedAt:  details.CreatedAt,
		UpdatedAt:  details.UpdatedAt,
	}
}

// PurgeCardsResponse contains the counts of records destroyed by a purge.
type PurgeCardsResponse struct {
	DeletedCards       int64 `json:"deleted_cards"`
	DeletedFpsAccounts int64 `json:"deleted_fps_accounts"`
}
