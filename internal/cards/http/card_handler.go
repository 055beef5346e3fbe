// Package http provides HTTP handlers for card record operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
	auditUseCase "github.com/allisson/cardvault/internal/audit/usecase"
	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
	"github.com/allisson/cardvault/internal/cards/http/dto"
	cardsUseCase "github.com/allisson/cardvault/internal/cards/usecase"
	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/httputil"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// CardHandler handles HTTP requests for card record operations. Reveal and
// purge record signed audit entries; audit failures are logged but never
// block the response.
type CardHandler struct {
	cardUseCase     cardsUseCase.CardUseCase
	accountUseCase  authUseCase.AccountUseCase
	auditLogUseCase auditUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewCardHandler creates a new card handler with required dependencies.
func NewCardHandler(
	cardUseCase cardsUseCase.CardUseCase,
	accountUseCase authUseCase.AccountUseCase,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *CardHandler {
	return &CardHandler{
		cardUseCase:     cardUseCase,
		accountUseCase:  accountUseCase,
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// CreateHandler stores a new card.
// POST /v1/cards
// Returns 201 Created with the non-sensitive projection.
func (h *CardHandler) CreateHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	card, err := h.cardUseCase.Create(c.Request.Context(), account.ID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCardToCreateResponse(card))
}

// ListHandler returns the non-sensitive list projection of the account's cards.
// GET /v1/cards
func (h *CardHandler) ListHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	summaries, err := h.cardUseCase.List(c.Request.Context(), account.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSummariesToListResponse(summaries))
}

// RevealHandler decrypts and returns the full card details. The route is
// behind the step-up middleware.
// GET /v1/cards/:id
func (h *CardHandler) RevealHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	cardID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	details, err := h.cardUseCase.Reveal(c.Request.Context(), account.ID, cardID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recordAudit(c, auditDomain.ActionCardReveal, cardID.String(), map[string]any{
		"network": string(details.Network),
	})

	c.JSON(http.StatusOK, dto.MapDetailsToResponse(details))
}

// UpdateHandler applies a partial card update.
// PATCH /v1/cards/:id
// Returns 204 No Content on success.
func (h *CardHandler) UpdateHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	cardID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.cardUseCase.Update(c.Request.Context(), account.ID, cardID, req.ToInput()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHandler removes a single card.
// DELETE /v1/cards/:id
// Returns 204 No Content on success.
func (h *CardHandler) DeleteHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	cardID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.cardUseCase.Delete(c.Request.Context(), account.ID, cardID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// PurgeHandler destroys all cards and FPS aliases of the account in one
// transaction. The route is behind the step-up middleware, and the account
// password must be re-proved in the request body.
// POST /v1/cards/purge
// Returns 200 OK with the deleted counts.
func (h *CardHandler) PurgeHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.PurgeCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.accountUseCase.VerifyPassword(c.Request.Context(), account.ID, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	cards, aliases, err := h.cardUseCase.Purge(c.Request.Context(), account.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recordAudit(c, auditDomain.ActionCardPurge, "", map[string]any{
		"deleted_cards":        cards,
		"deleted_fps_accounts": aliases,
	})

	c.JSON(http.StatusOK, dto.PurgeCardsResponse{
		DeletedCards:       cards,
		DeletedFpsAccounts: aliases,
	})
}

// recordAudit writes a signed audit entry, logging instead of failing the
// request when the trail is unavailable.
func (h *CardHandler) recordAudit(
	c *gin.Context,
	action auditDomain.Action,
	resource string,
	metadata map[string]any,
) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		return
	}

	err := h.auditLogUseCase.Record(c.Request.Context(), account.ID, action, resource, metadata)
	if err != nil {
		h.logger.Error("failed to record audit log",
			slog.String("action", string(action)),
			slog.String("account_id", account.ID.String()),
			slog.String("error", err.Error()))
	}
}
