// Package http provides HTTP handlers for identity document operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
	auditUseCase "github.com/allisson/cardvault/internal/audit/usecase"
	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	"github.com/allisson/cardvault/internal/documents/http/dto"
	documentsUseCase "github.com/allisson/cardvault/internal/documents/usecase"
	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/httputil"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// DocumentHandler handles HTTP requests for identity document operations.
// Reveals record a signed audit entry; audit failures are logged but never
// block the response.
type DocumentHandler struct {
	documentUseCase documentsUseCase.DocumentUseCase
	auditLogUseCase auditUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler with required dependencies.
func NewDocumentHandler(
	documentUC documentsUseCase.DocumentUseCase,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUC,
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// CreateHandler stores a new document.
// POST /v1/documents
// Returns 201 Created with the non-sensitive projection of the new document.
func (h *DocumentHandler) CreateHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	document, err := h.documentUseCase.Create(c.Request.Context(), account.ID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapDocumentToCreateResponse(document))
}

// ListHandler returns the masked document list.
// GET /v1/documents
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	summaries, err := h.documentUseCase.List(c.Request.Context(), account.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSummariesToListResponse(summaries))
}

// RevealHandler returns the fully decrypted document. The route is behind the
// step-up middleware.
// GET /v1/documents/:id
func (h *DocumentHandler) RevealHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	documentID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	details, err := h.documentUseCase.Reveal(c.Request.Context(), account.ID, documentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.auditLogUseCase.Record(c.Request.Context(), account.ID,
		auditDomain.ActionDocumentReveal, documentID.String(),
		map[string]any{"document_type": string(details.Type)}); err != nil {
		h.logger.Error("failed to record audit log",
			slog.String("action", string(auditDomain.ActionDocumentReveal)),
			slog.String("account_id", account.ID.String()),
			slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.MapDetailsToResponse(details))
}

// UpdateHandler applies a partial document update. The document type is
// immutable. The route is behind the step-up middleware.
// PATCH /v1/documents/:id
// Returns 204 No Content on success.
func (h *DocumentHandler) UpdateHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	documentID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.documentUseCase.Update(c.Request.Context(), account.ID, documentID, req.ToInput()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHandler removes a single document. The route is behind the step-up
// middleware.
// DELETE /v1/documents/:id
// Returns 204 No Content on success.
func (h *DocumentHandler) DeleteHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	documentID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.documentUseCase.Delete(c.Request.Context(), account.ID, documentID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
