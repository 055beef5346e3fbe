package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/cardvault/internal/auth/http/dto"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/httputil"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// TwoFactorHandler handles HTTP requests for two-factor enrollment operations.
type TwoFactorHandler struct {
	twoFactorUseCase authUseCase.TwoFactorUseCase
	logger           *slog.Logger
}

// NewTwoFactorHandler creates a new two-factor handler with required dependencies.
func NewTwoFactorHandler(
	twoFactorUseCase authUseCase.TwoFactorUseCase,
	logger *slog.Logger,
) *TwoFactorHandler {
	return &TwoFactorHandler{
		twoFactorUseCase: twoFactorUseCase,
		logger:           logger,
	}
}

// SetupHandler starts two-factor enrollment for the authenticated account.
// POST /v1/2fa/setup
// Returns 201 Created with the shared secret and provisioning URL.
func (h *TwoFactorHandler) SetupHandler(c *gin.Context) {
	account, ok := GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	output, err := h.twoFactorUseCase.Setup(c.Request.Context(), account.ID, account.Email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.SetupTwoFactorResponse{
		Secret:          output.Secret,
		ProvisioningURL: output.URL,
	})
}

// VerifyHandler completes a pending two-factor enrollment.
// POST /v1/2fa/verify
// Returns 204 No Content on success.
func (h *TwoFactorHandler) VerifyHandler(c *gin.Context) {
	account, ok := GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.VerifyTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.twoFactorUseCase.Verify(c.Request.Context(), account.ID, req.Code); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ResetHandler restarts two-factor enrollment after a password re-proof.
// POST /v1/2fa/reset
// Returns 200 OK with a fresh shared secret and provisioning URL. The previous
// secret stops gating requests immediately.
func (h *TwoFactorHandler) ResetHandler(c *gin.Context) {
	account, ok := GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ResetTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.twoFactorUseCase.ResetInit(c.Request.Context(), account.ID, account.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SetupTwoFactorResponse{
		Secret:          output.Secret,
		ProvisioningURL: output.URL,
	})
}

// EnrollmentHandler reports the two-factor enrollment state for the
// authenticated account.
// GET /v1/2fa
// Returns 200 OK with the enrollment status.
func (h *TwoFactorHandler) EnrollmentHandler(c *gin.Context) {
	account, ok := GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	enrollment, err := h.twoFactorUseCase.Enrollment(c.Request.Context(), account.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEnrollmentToResponse(enrollment))
}
