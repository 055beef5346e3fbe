package app

import (
	"fmt"

	documentsHTTP "github.com/allisson/cardvault/internal/documents/http"
	documentsRepository "github.com/allisson/cardvault/internal/documents/repository"
	documentsUseCase "github.com/allisson/cardvault/internal/documents/usecase"
)

// DocumentRepository returns the identity document repository based on database driver.
func (c *Container) DocumentRepository() (documentsUseCase.DocumentRepository, error) {
	var err error
	c.documentRepoInit.Do(func() {
		c.documentRepo, err = c.initDocumentRepository()
		if err != nil {
			c.initErrors["documentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentRepo"]; exists {
		return nil, storedErr
	}
	return c.documentRepo, nil
}

// DocumentUseCase returns the identity document use case.
func (c *Container) DocumentUseCase() (documentsUseCase.DocumentUseCase, error) {
	var err error
	c.documentUseCaseInit.Do(func() {
		c.documentUseCase, err = c.initDocumentUseCase()
		if err != nil {
			c.initErrors["documentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentUseCase"]; exists {
		return nil, storedErr
	}
	return c.documentUseCase, nil
}

// DocumentHandler returns the HTTP handler for identity document operations.
func (c *Container) DocumentHandler() (*documentsHTTP.DocumentHandler, error) {
	var err error
	c.documentHandlerInit.Do(func() {
		c.documentHandler, err = c.initDocumentHandler()
		if err != nil {
			c.initErrors["documentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentHandler"]; exists {
		return nil, storedErr
	}
	return c.documentHandler, nil
}

// initDocumentRepository creates the document repository based on the database driver.
func (c *Container) initDocumentRepository() (documentsUseCase.DocumentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for document repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return documentsRepository.NewPostgreSQLDocumentRepository(db), nil
	case "mysql":
		return documentsRepository.NewMySQLDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDocumentUseCase creates the document use case with all its dependencies.
func (c *Container) initDocumentUseCase() (documentsUseCase.DocumentUseCase, error) {
	documentRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for document use case: %w", err)
	}

	keyMaterialUC, err := c.KeyMaterialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material use case for document use case: %w", err)
	}

	keyCustodian, err := c.KeyCustodian()
	if err != nil {
		return nil, fmt.Errorf("failed to get key custodian for document use case: %w", err)
	}

	baseUseCase := documentsUseCase.NewDocumentUseCase(
		documentRepo,
		keyMaterialUC,
		keyCustodian,
		c.DocumentCipher(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for document use case: %w", err)
		}
		return documentsUseCase.NewDocumentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initDocumentHandler creates the document HTTP handler with all its dependencies.
func (c *Container) initDocumentHandler() (*documentsHTTP.DocumentHandler, error) {
	documentUC, err := c.DocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for document handler: %w", err)
	}

	auditLogUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for document handler: %w", err)
	}

	return documentsHTTP.NewDocumentHandler(documentUC, auditLogUC, c.Logger()), nil
}
