// Package http provides HTTP server implementation and router wiring.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/allisson/cardvault/internal/audit/http"
	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	authService "github.com/allisson/cardvault/internal/auth/service"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
	cardsHTTP "github.com/allisson/cardvault/internal/cards/http"
	"github.com/allisson/cardvault/internal/config"
	documentsHTTP "github.com/allisson/cardvault/internal/documents/http"
	fpsHTTP "github.com/allisson/cardvault/internal/fps/http"
	"github.com/allisson/cardvault/internal/metrics"
)

// Server represents the main API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Routes are wired separately with
// SetupRouter before the server is started.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		db:     db,
		logger: logger,
	}
}

// RouterDependencies carries the handlers and auth components SetupRouter
// wires into the route tree.
type RouterDependencies struct {
	TwoFactorHandler *authHTTP.TwoFactorHandler
	CardHandler      *cardsHTTP.CardHandler
	FpsHandler       *fpsHTTP.FpsHandler
	DocumentHandler  *documentsHTTP.DocumentHandler
	AuditLogHandler  *auditHTTP.AuditLogHandler

	AccountUseCase   authUseCase.AccountUseCase
	TwoFactorUseCase authUseCase.TwoFactorUseCase
	TokenService     authService.TokenService
	StepUpGuard      *authService.StepUpGuard

	// MetricsProvider is optional; when nil the HTTP metrics middleware is
	// not installed.
	MetricsProvider *metrics.Provider
}

// SetupRouter configures all routes and middleware.
//
// Everything under /v1 requires a Bearer token. Routes that expose or mutate
// decrypted material additionally pass through the step-up middleware, which
// challenges accounts with an active two-factor enrollment for a TOTP code.
func (s *Server) SetupRouter(cfg *config.Config, deps RouterDependencies) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	// Health endpoints are unauthenticated.
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(authHTTP.AuthenticationMiddleware(deps.AccountUseCase, deps.TokenService, s.logger))
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	stepUp := authHTTP.StepUpMiddleware(deps.TwoFactorUseCase, deps.StepUpGuard, s.logger)

	twoFactor := v1.Group("/2fa")
	{
		twoFactor.GET("", deps.TwoFactorHandler.EnrollmentHandler)
		twoFactor.POST("/setup", deps.TwoFactorHandler.SetupHandler)
		twoFactor.POST("/verify", deps.TwoFactorHandler.VerifyHandler)
		twoFactor.POST("/reset", stepUp, deps.TwoFactorHandler.ResetHandler)
	}

	cards := v1.Group("/cards")
	{
		cards.POST("", deps.CardHandler.CreateHandler)
		cards.GET("", deps.CardHandler.ListHandler)
		// /purge must be registered before /:id.
		cards.POST("/purge", stepUp, deps.CardHandler.PurgeHandler)
		cards.GET("/:id", stepUp, deps.CardHandler.RevealHandler)
		cards.PATCH("/:id", stepUp, deps.CardHandler.UpdateHandler)
		cards.DELETE("/:id", stepUp, deps.CardHandler.DeleteHandler)
	}

	fps := v1.Group("/fps")
	{
		fps.POST("", deps.FpsHandler.CreateHandler)
		fps.GET("", deps.FpsHandler.ListHandler)
		// /banks must be registered before /:id.
		fps.GET("/banks", deps.FpsHandler.BanksHandler)
		fps.GET("/:id", stepUp, deps.FpsHandler.DetailHandler)
		fps.PATCH("/:id", stepUp, deps.FpsHandler.UpdateHandler)
		fps.DELETE("/:id", stepUp, deps.FpsHandler.DeleteHandler)
	}

	documents := v1.Group("/documents")
	{
		documents.POST("", deps.DocumentHandler.CreateHandler)
		documents.GET("", deps.DocumentHandler.ListHandler)
		documents.GET("/:id", stepUp, deps.DocumentHandler.RevealHandler)
		documents.PATCH("/:id", stepUp, deps.DocumentHandler.UpdateHandler)
		documents.DELETE("/:id", stepUp, deps.DocumentHandler.DeleteHandler)
	}

	v1.GET("/audit-logs", deps.AuditLogHandler.ListHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler responds to liveness probes.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler responds to readiness probes, checking downstream
// components.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("readiness check failed: database ping",
			slog.String("error", err.Error()))
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
