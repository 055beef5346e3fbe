package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/cardvault/internal/auth/service"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/httputil"
)

// totpCodeField is the JSON body and query string field carrying the TOTP code.
const totpCodeField = "totp_code"

// totpHeader is the request header carrying the TOTP code.
const totpHeader = "X-TOTP"

// StepUpMiddleware gates sensitive routes behind TOTP verification for
// accounts with an active two-factor enrollment. Accounts without an active
// enrollment pass through unchallenged.
//
// This middleware MUST be used after AuthenticationMiddleware, as it requires
// an authenticated account in the request context.
//
// The TOTP code is looked up in priority order:
// 1. X-TOTP request header
// 2. totp_code field in a JSON request body
// 3. totp_code query string parameter
//
// Error handling:
//   - Enrolled account without a code → 401 Unauthorized (code required)
//   - Enrolled account with a wrong code → 401 Unauthorized (code invalid)
//   - Other errors → 500 Internal Server Error
func StepUpMiddleware(
	twoFactorUseCase authUseCase.TwoFactorUseCase,
	guard *authService.StepUpGuard,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := GetAccount(c.Request.Context())
		if !ok {
			logger.Error("step-up check failed: no authenticated account in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		enrollment, err := twoFactorUseCase.Enrollment(c.Request.Context(), account.ID)
		if err != nil {
			logger.Error("step-up check failed: unable to load enrollment",
				slog.String("account_id", account.ID.String()),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		code := extractTOTPCode(c)

		if err := guard.Authorize(enrollment, code); err != nil {
			logger.Debug("step-up verification failed",
				slog.String("account_id", account.ID.String()),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractTOTPCode pulls the TOTP code from the request, checking the X-TOTP
// header first, then a totp_code field in a JSON body, then the query string.
// The request body is restored so downstream handlers can still bind it.
func extractTOTPCode(c *gin.Context) string {
	if code := c.GetHeader(totpHeader); code != "" {
		return code
	}

	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

			var payload map[string]json.RawMessage
			if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
				if raw, ok := payload[totpCodeField]; ok {
					var code string
					if json.Unmarshal(raw, &code) == nil && code != "" {
						return code
					}
				}
			}
		}
	}

	return c.Query(totpCodeField)
}
