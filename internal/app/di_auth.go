package app

import (
	"fmt"

	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	authRepository "github.com/allisson/cardvault/internal/auth/repository"
	authService "github.com/allisson/cardvault/internal/auth/service"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
)

// TokenService returns the API token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// TOTPService returns the TOTP service.
func (c *Container) TOTPService() authService.TOTPService {
	c.totpServiceInit.Do(func() {
		c.totpService = authService.NewTOTPService(c.config.TOTPIssuer)
	})
	return c.totpService
}

// StepUpGuard returns the TOTP step-up guard.
func (c *Container) StepUpGuard() (*authService.StepUpGuard, error) {
	var err error
	c.stepUpGuardInit.Do(func() {
		c.stepUpGuard, err = c.initStepUpGuard()
		if err != nil {
			c.initErrors["stepUpGuard"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["stepUpGuard"]; exists {
		return nil, storedErr
	}
	return c.stepUpGuard, nil
}

// AccountRepository returns the account repository based on database driver.
func (c *Container) AccountRepository() (authUseCase.AccountRepository, error) {
	var err error
	c.accountRepoInit.Do(func() {
		c.accountRepo, err = c.initAccountRepository()
		if err != nil {
			c.initErrors["accountRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountRepo"]; exists {
		return nil, storedErr
	}
	return c.accountRepo, nil
}

// EnrollmentRepository returns the two-factor enrollment repository based on database driver.
func (c *Container) EnrollmentRepository() (authUseCase.EnrollmentRepository, error) {
	var err error
	c.enrollmentRepoInit.Do(func() {
		c.enrollmentRepo, err = c.initEnrollmentRepository()
		if err != nil {
			c.initErrors["enrollmentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["enrollmentRepo"]; exists {
		return nil, storedErr
	}
	return c.enrollmentRepo, nil
}

// AccountUseCase returns the account use case.
func (c *Container) AccountUseCase() (authUseCase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// TwoFactorUseCase returns the two-factor use case.
func (c *Container) TwoFactorUseCase() (authUseCase.TwoFactorUseCase, error) {
	var err error
	c.twoFactorUseCaseInit.Do(func() {
		c.twoFactorUseCase, err = c.initTwoFactorUseCase()
		if err != nil {
			c.initErrors["twoFactorUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["twoFactorUseCase"]; exists {
		return nil, storedErr
	}
	return c.twoFactorUseCase, nil
}

// TwoFactorHandler returns the HTTP handler for two-factor operations.
func (c *Container) TwoFactorHandler() (*authHTTP.TwoFactorHandler, error) {
	var err error
	c.twoFactorHandlerInit.Do(func() {
		c.twoFactorHandler, err = c.initTwoFactorHandler()
		if err != nil {
			c.initErrors["twoFactorHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["twoFactorHandler"]; exists {
		return nil, storedErr
	}
	return c.twoFactorHandler, nil
}

// initStepUpGuard creates the step-up guard with the field cipher and TOTP service.
func (c *Container) initStepUpGuard() (*authService.StepUpGuard, error) {
	fieldCipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for step-up guard: %w", err)
	}
	return authService.NewStepUpGuard(fieldCipher, c.TOTPService()), nil
}

// initAccountRepository creates the account repository based on the database driver.
func (c *Container) initAccountRepository() (authUseCase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLAccountRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEnrollmentRepository creates the enrollment repository based on the database driver.
func (c *Container) initEnrollmentRepository() (authUseCase.EnrollmentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for enrollment repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLEnrollmentRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLEnrollmentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAccountUseCase creates the account use case with all its dependencies.
func (c *Container) initAccountUseCase() (authUseCase.AccountUseCase, error) {
	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	return authUseCase.NewAccountUseCase(accountRepo, c.PasswordService(), c.TokenService()), nil
}

// initTwoFactorUseCase creates the two-factor use case with all its dependencies.
func (c *Container) initTwoFactorUseCase() (authUseCase.TwoFactorUseCase, error) {
	enrollmentRepo, err := c.EnrollmentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment repository for two-factor use case: %w", err)
	}

	accountUC, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for two-factor use case: %w", err)
	}

	fieldCipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for two-factor use case: %w", err)
	}

	baseUseCase := authUseCase.NewTwoFactorUseCase(enrollmentRepo, accountUC, c.TOTPService(), fieldCipher)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for two-factor use case: %w", err)
		}
		return authUseCase.NewTwoFactorUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTwoFactorHandler creates the two-factor HTTP handler with all its dependencies.
func (c *Container) initTwoFactorHandler() (*authHTTP.TwoFactorHandler, error) {
	twoFactorUC, err := c.TwoFactorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get two-factor use case for two-factor handler: %w", err)
	}

	return authHTTP.NewTwoFactorHandler(twoFactorUC, c.Logger()), nil
}
