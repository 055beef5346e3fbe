// Package http provides HTTP handlers for the audit trail.
package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
	auditUseCase "github.com/allisson/cardvault/internal/audit/usecase"
	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/httputil"
)

// Pagination bounds for audit log listing.
const (
	defaultLimit = 50
	maxLimit     = 500
)

// AuditLogResponse represents an audit entry in API responses. Signatures are
// internal and never exposed.
type AuditLogResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ListAuditLogsResponse represents a paginated list of audit entries.
type ListAuditLogsResponse struct {
	Data []AuditLogResponse `json:"data"`
}

// AuditLogHandler handles HTTP requests for the audit trail.
type AuditLogHandler struct {
	auditLogUseCase auditUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// ListHandler retrieves the authenticated account's audit entries, newest first.
// GET /v1/audit-logs?offset=0&limit=50
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	limit, err := parseQueryInt(c, "limit", defaultLimit)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	auditLogs, err := h.auditLogUseCase.ListByAccount(c.Request.Context(), account.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, mapAuditLogsToListResponse(auditLogs))
}

// parseQueryInt parses an integer query parameter with a default value.
func parseQueryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, name+" must be an integer")
	}
	return value, nil
}

// mapAuditLogsToListResponse converts domain entries to an API response.
func mapAuditLogsToListResponse(auditLogs []*auditDomain.AuditLog) ListAuditLogsResponse {
	responses := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		responses = append(responses, AuditLogResponse{
			ID:        auditLog.ID.String(),
			Action:    string(auditLog.Action),
			Resource:  auditLog.Resource,
			Metadata:  auditLog.Metadata,
			CreatedAt: auditLog.CreatedAt,
		})
	}
	return ListAuditLogsResponse{Data: responses}
}
