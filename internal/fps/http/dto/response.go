// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
)

// FpsSummaryResponse represents an alias in list responses; the note is
// withheld until step-up.
type FpsSummaryResponse struct {
	ID        string    `json:"id"`
	FpsID     string    `json:"fps_id"`
	Recipient string    `json:"recipient"`
	Bank      string    `json:"bank"`
	CreatedAt time.Time `json:"created_at"`
}

// ListFpsResponse represents the alias list projection.
type ListFpsResponse struct {
	Data []FpsSummaryResponse `json:"data"`
}

// MapSummariesToListResponse converts domain summaries to a list API response.
func MapSummariesToListResponse(summaries []*fpsDomain.FpsSummary) ListFpsResponse {
	responses := make([]FpsSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, FpsSummaryResponse{
			ID:        summary.ID.String(),
			FpsID:     summary.FpsID,
			Recipient: summary.Recipient,
			Bank:      summary.Bank,
			CreatedAt: summary.CreatedAt,
		})
	}
	return ListFpsResponse{Data: responses}
}

// FpsDetailResponse represents the full alias including the note.
type FpsDetailResponse struct {
	ID        string    `json:"id"`
	FpsID     string    `json:"fps_id"`
	Recipient string    `json:"recipient"`
	Bank      string    `json:"bank"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapFpsAccountToDetailResponse converts a domain alias to a detail response.
func MapFpsAccountToDetailResponse(fpsAccount *fpsDomain.FpsAccount) FpsDetailResponse {
	return FpsDetailResponse{
		ID:        fpsAccount.ID.String(),
		FpsID:     fpsAccount.FpsID,
		Recipient: fpsAccount.Recipient,
		Bank:      fpsAccount.Bank,
		Note:      fpsAccount.Note,
		CreatedAt: fpsAccount.CreatedAt,
		UpdatedAt: fpsAccount.UpdatedAt,
	}
}

// BanksResponse represents the curated bank list.
type BanksResponse struct {
	Data []string `json:"data"`
}
