// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditHTTP "github.com/allisson/cardvault/internal/audit/http"
	auditUseCase "github.com/allisson/cardvault/internal/audit/usecase"
	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	authService "github.com/allisson/cardvault/internal/auth/service"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
	cardsHTTP "github.com/allisson/cardvault/internal/cards/http"
	cardsService "github.com/allisson/cardvault/internal/cards/service"
	cardsUseCase "github.com/allisson/cardvault/internal/cards/usecase"
	"github.com/allisson/cardvault/internal/config"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	cryptoUseCase "github.com/allisson/cardvault/internal/crypto/usecase"
	"github.com/allisson/cardvault/internal/database"
	documentsHTTP "github.com/allisson/cardvault/internal/documents/http"
	documentsUseCase "github.com/allisson/cardvault/internal/documents/usecase"
	fpsHTTP "github.com/allisson/cardvault/internal/fps/http"
	fpsUseCase "github.com/allisson/cardvault/internal/fps/usecase"
	"github.com/allisson/cardvault/internal/http"
	"github.com/allisson/cardvault/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	masterSecret       string
	fieldCipher        cryptoService.FieldCipher
	keyCustodian       cryptoService.KeyCustodian
	documentCipher     cryptoService.DocumentCipher
	keyMaterialRepo    cryptoUseCase.KeyMaterialRepository
	keyMaterialUseCase cryptoUseCase.KeyMaterialUseCase

	// Auth
	tokenService     authService.TokenService
	passwordService  authService.PasswordService
	totpService      authService.TOTPService
	stepUpGuard      *authService.StepUpGuard
	accountRepo      authUseCase.AccountRepository
	enrollmentRepo   authUseCase.EnrollmentRepository
	accountUseCase   authUseCase.AccountUseCase
	twoFactorUseCase authUseCase.TwoFactorUseCase
	twoFactorHandler *authHTTP.TwoFactorHandler

	// Cards
	classifier   *cardsService.Classifier
	policyEngine *cardsService.PolicyEngine
	cardRepo     cardsUseCase.CardRepository
	cardUseCase  cardsUseCase.CardUseCase
	cardHandler  *cardsHTTP.CardHandler

	// FPS aliases
	fpsRepo    fpsUseCase.FpsAccountRepository
	fpsUseCase fpsUseCase.FpsUseCase
	fpsHandler *fpsHTTP.FpsHandler

	// Documents
	documentRepo    documentsUseCase.DocumentRepository
	documentUseCase documentsUseCase.DocumentUseCase
	documentHandler *documentsHTTP.DocumentHandler

	// Audit trail
	auditLogRepo    auditUseCase.AuditLogRepository
	auditLogUseCase auditUseCase.AuditLogUseCase
	auditLogHandler *auditHTTP.AuditLogHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	txManagerInit         sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	masterSecretInit      sync.Once
	fieldCipherInit       sync.Once
	keyCustodianInit      sync.Once
	documentCipherInit    sync.Once
	keyMaterialRepoInit   sync.Once
	keyMaterialUCInit     sync.Once
	tokenServiceInit      sync.Once
	passwordServiceInit   sync.Once
	totpServiceInit       sync.Once
	stepUpGuardInit       sync.Once
	accountRepoInit       sync.Once
	enrollmentRepoInit    sync.Once
	accountUseCaseInit    sync.Once
	twoFactorUseCaseInit  sync.Once
	twoFactorHandlerInit  sync.Once
	classifierInit        sync.Once
	policyEngineInit      sync.Once
	cardRepoInit          sync.Once
	cardUseCaseInit       sync.Once
	cardHandlerInit       sync.Once
	fpsRepoInit           sync.Once
	fpsUseCaseInit        sync.Once
	fpsHandlerInit        sync.Once
	documentRepoInit      sync.Once
	documentUseCaseInit   sync.Once
	documentHandlerInit   sync.Once
	auditLogRepoInit      sync.Once
	auditLogUseCaseInit   sync.Once
	auditLogHandlerInit   sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// HTTPServer returns the HTTP server instance with all routes wired.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server instance.
// Returns nil without error when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	twoFactorHandler, err := c.TwoFactorHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get two-factor handler for http server: %w", err)
	}

	cardHandler, err := c.CardHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get card handler for http server: %w", err)
	}

	fpsHandler, err := c.FpsHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get fps handler for http server: %w", err)
	}

	documentHandler, err := c.DocumentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get document handler for http server: %w", err)
	}

	auditLogHandler, err := c.AuditLogHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log handler for http server: %w", err)
	}

	accountUC, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for http server: %w", err)
	}

	twoFactorUC, err := c.TwoFactorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get two-factor use case for http server: %w", err)
	}

	stepUpGuard, err := c.StepUpGuard()
	if err != nil {
		return nil, fmt.Errorf("failed to get step-up guard for http server: %w", err)
	}

	var metricsProvider *metrics.Provider
	if c.config.MetricsEnabled {
		metricsProvider, err = c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(c.config, http.RouterDependencies{
		TwoFactorHandler: twoFactorHandler,
		CardHandler:      cardHandler,
		FpsHandler:       fpsHandler,
		DocumentHandler:  documentHandler,
		AuditLogHandler:  auditLogHandler,
		AccountUseCase:   accountUC,
		TwoFactorUseCase: twoFactorUC,
		TokenService:     c.TokenService(),
		StepUpGuard:      stepUpGuard,
		MetricsProvider:  metricsProvider,
	})

	return server, nil
}

// initMetricsServer creates the metrics HTTP server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	), nil
}
