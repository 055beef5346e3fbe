package app

import (
	"fmt"

	fpsHTTP "github.com/allisson/cardvault/internal/fps/http"
	fpsRepository "github.com/allisson/cardvault/internal/fps/repository"
	fpsUseCase "github.com/allisson/cardvault/internal/fps/usecase"
)

// FpsAccountRepository returns the FPS alias repository based on database driver.
func (c *Container) FpsAccountRepository() (fpsUseCase.FpsAccountRepository, error) {
	var err error
	c.fpsRepoInit.Do(func() {
		c.fpsRepo, err = c.initFpsAccountRepository()
		if err != nil {
			c.initErrors["fpsRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fpsRepo"]; exists {
		return nil, storedErr
	}
	return c.fpsRepo, nil
}

// FpsUseCase returns the FPS alias use case.
func (c *Container) FpsUseCase() (fpsUseCase.FpsUseCase, error) {
	var err error
	c.fpsUseCaseInit.Do(func() {
		c.fpsUseCase, err = c.initFpsUseCase()
		if err != nil {
			c.initErrors["fpsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fpsUseCase"]; exists {
		return nil, storedErr
	}
	return c.fpsUseCase, nil
}

// FpsHandler returns the HTTP handler for FPS alias operations.
func (c *Container) FpsHandler() (*fpsHTTP.FpsHandler, error) {
	var err error
	c.fpsHandlerInit.Do(func() {
		c.fpsHandler, err = c.initFpsHandler()
		if err != nil {
			c.initErrors["fpsHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fpsHandler"]; exists {
		return nil, storedErr
	}
	return c.fpsHandler, nil
}

// initFpsAccountRepository creates the FPS alias repository based on the database driver.
func (c *Container) initFpsAccountRepository() (fpsUseCase.FpsAccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for fps repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return fpsRepository.NewPostgreSQLFpsAccountRepository(db), nil
	case "mysql":
		return fpsRepository.NewMySQLFpsAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initFpsUseCase creates the FPS alias use case with all its dependencies.
func (c *Container) initFpsUseCase() (fpsUseCase.FpsUseCase, error) {
	fpsRepo, err := c.FpsAccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get fps repository for fps use case: %w", err)
	}

	baseUseCase := fpsUseCase.NewFpsUseCase(fpsRepo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for fps use case: %w", err)
		}
		return fpsUseCase.NewFpsUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initFpsHandler creates the FPS HTTP handler with all its dependencies.
func (c *Container) initFpsHandler() (*fpsHTTP.FpsHandler, error) {
	fpsUC, err := c.FpsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get fps use case for fps handler: %w", err)
	}

	auditLogUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for fps handler: %w", err)
	}

	return fpsHTTP.NewFpsHandler(fpsUC, auditLogUC, c.Logger()), nil
}
