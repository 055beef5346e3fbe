package app

import (
	"context"
	"fmt"

	cryptoRepository "github.com/allisson/cardvault/internal/crypto/repository"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	cryptoUseCase "github.com/allisson/cardvault/internal/crypto/usecase"
)

// MasterSecret returns the master secret, resolved through the configured
// KMS keeper when one is set.
func (c *Container) MasterSecret() (string, error) {
	var err error
	c.masterSecretInit.Do(func() {
		c.masterSecret, err = c.initMasterSecret()
		if err != nil {
			c.initErrors["masterSecret"] = err
		}
	})
	if err != nil {
		return "", err
	}
	if storedErr, exists := c.initErrors["masterSecret"]; exists {
		return "", storedErr
	}
	return c.masterSecret, nil
}

// FieldCipher returns the AES-CBC field cipher keyed by the master secret.
func (c *Container) FieldCipher() (cryptoService.FieldCipher, error) {
	var err error
	c.fieldCipherInit.Do(func() {
		c.fieldCipher, err = c.initFieldCipher()
		if err != nil {
			c.initErrors["fieldCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldCipher"]; exists {
		return nil, storedErr
	}
	return c.fieldCipher, nil
}

// KeyCustodian returns the per-account RSA key custodian.
func (c *Container) KeyCustodian() (cryptoService.KeyCustodian, error) {
	var err error
	c.keyCustodianInit.Do(func() {
		c.keyCustodian, err = c.initKeyCustodian()
		if err != nil {
			c.initErrors["keyCustodian"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyCustodian"]; exists {
		return nil, storedErr
	}
	return c.keyCustodian, nil
}

// DocumentCipher returns the RSA-OAEP document cipher.
func (c *Container) DocumentCipher() cryptoService.DocumentCipher {
	c.documentCipherInit.Do(func() {
		c.documentCipher = cryptoService.NewRSAOAEPDocumentCipher()
	})
	return c.documentCipher
}

// KeyMaterialRepository returns the key material repository based on database driver.
func (c *Container) KeyMaterialRepository() (cryptoUseCase.KeyMaterialRepository, error) {
	var err error
	c.keyMaterialRepoInit.Do(func() {
		c.keyMaterialRepo, err = c.initKeyMaterialRepository()
		if err != nil {
			c.initErrors["keyMaterialRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyMaterialRepo"]; exists {
		return nil, storedErr
	}
	return c.keyMaterialRepo, nil
}

// KeyMaterialUseCase returns the key material use case.
func (c *Container) KeyMaterialUseCase() (cryptoUseCase.KeyMaterialUseCase, error) {
	var err error
	c.keyMaterialUCInit.Do(func() {
		c.keyMaterialUseCase, err = c.initKeyMaterialUseCase()
		if err != nil {
			c.initErrors["keyMaterialUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyMaterialUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyMaterialUseCase, nil
}

// initMasterSecret resolves the master secret from configuration.
func (c *Container) initMasterSecret() (string, error) {
	masterSecret, err := cryptoService.LoadMasterSecret(context.Background(), c.config)
	if err != nil {
		return "", fmt.Errorf("failed to load master secret: %w", err)
	}
	return masterSecret, nil
}

// initFieldCipher creates the AES-CBC field cipher.
func (c *Container) initFieldCipher() (cryptoService.FieldCipher, error) {
	masterSecret, err := c.MasterSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get master secret for field cipher: %w", err)
	}

	fieldCipher, err := cryptoService.NewAESCBCFieldCipher(masterSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create field cipher: %w", err)
	}
	return fieldCipher, nil
}

// initKeyCustodian creates the RSA key custodian using the field cipher.
func (c *Container) initKeyCustodian() (cryptoService.KeyCustodian, error) {
	fieldCipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for key custodian: %w", err)
	}
	return cryptoService.NewRSAKeyCustodian(fieldCipher), nil
}

// initKeyMaterialRepository creates the key material repository based on the database driver.
func (c *Container) initKeyMaterialRepository() (cryptoUseCase.KeyMaterialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for key material repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return cryptoRepository.NewPostgreSQLKeyMaterialRepository(db), nil
	case "mysql":
		return cryptoRepository.NewMySQLKeyMaterialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initKeyMaterialUseCase creates the key material use case with all its dependencies.
func (c *Container) initKeyMaterialUseCase() (cryptoUseCase.KeyMaterialUseCase, error) {
	keyCustodian, err := c.KeyCustodian()
	if err != nil {
		return nil, fmt.Errorf("failed to get key custodian for key material use case: %w", err)
	}

	keyMaterialRepo, err := c.KeyMaterialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material repository for key material use case: %w", err)
	}

	return cryptoUseCase.NewKeyMaterialUseCase(keyCustodian, keyMaterialRepo), nil
}
