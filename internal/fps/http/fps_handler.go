// Package http provides HTTP handlers for FPS alias operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
	auditUseCase "github.com/allisson/cardvault/internal/audit/usecase"
	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/fps/http/dto"
	fpsUseCase "github.com/allisson/cardvault/internal/fps/usecase"
	"github.com/allisson/cardvault/internal/httputil"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// FpsHandler handles HTTP requests for FPS alias operations. The detail view
// records a signed audit entry; audit failures are logged but never block the
// response.
type FpsHandler struct {
	fpsUseCase      fpsUseCase.FpsUseCase
	auditLogUseCase auditUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewFpsHandler creates a new FPS handler with required dependencies.
func NewFpsHandler(
	fpsUC fpsUseCase.FpsUseCase,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *FpsHandler {
	return &FpsHandler{
		fpsUseCase:      fpsUC,
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// CreateHandler stores a new alias.
// POST /v1/fps
// Returns 201 Created with the list projection of the new alias.
func (h *FpsHandler) CreateHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateFpsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	fpsAccount, err := h.fpsUseCase.Create(c.Request.Context(), account.ID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.FpsSummaryResponse{
		ID:        fpsAccount.ID.String(),
		FpsID:     fpsAccount.FpsID,
		Recipient: fpsAccount.Recipient,
		Bank:      fpsAccount.Bank,
		CreatedAt: fpsAccount.CreatedAt,
	})
}

// ListHandler returns the account's aliases without notes.
// GET /v1/fps
func (h *FpsHandler) ListHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	summaries, err := h.fpsUseCase.List(c.Request.Context(), account.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSummariesToListResponse(summaries))
}

// BanksHandler returns the curated bank list for client pickers.
// GET /v1/fps/banks
func (h *FpsHandler) BanksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.BanksResponse{Data: h.fpsUseCase.Banks()})
}

// DetailHandler returns the full alias including the note. The route is
// behind the step-up middleware.
// GET /v1/fps/:id
func (h *FpsHandler) DetailHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fpsAccountID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	fpsAccount, err := h.fpsUseCase.Detail(c.Request.Context(), account.ID, fpsAccountID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.auditLogUseCase.Record(c.Request.Context(), account.ID,
		auditDomain.ActionFpsReveal, fpsAccountID.String(), nil); err != nil {
		h.logger.Error("failed to record audit log",
			slog.String("action", string(auditDomain.ActionFpsReveal)),
			slog.String("account_id", account.ID.String()),
			slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.MapFpsAccountToDetailResponse(fpsAccount))
}

// UpdateHandler applies a partial alias update. The FPS ID is immutable. The
// route is behind the step-up middleware.
// PATCH /v1/fps/:id
// Returns 204 No Content on success.
func (h *FpsHandler) UpdateHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fpsAccountID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateFpsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.fpsUseCase.Update(c.Request.Context(), account.ID, fpsAccountID, req.ToInput()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHandler removes a single alias. The route is behind the step-up
// middleware.
// DELETE /v1/fps/:id
// Returns 204 No Content on success.
func (h *FpsHandler) DeleteHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fpsAccountID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.fpsUseCase.Delete(c.Request.Context(), account.ID, fpsAccountID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
