// Package integration provides integration tests for audit trail cryptographic signatures.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardvault/internal/app"
	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
	auditService "github.com/allisson/cardvault/internal/audit/service"
	auditUseCase "github.com/allisson/cardvault/internal/audit/usecase"
	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	"github.com/allisson/cardvault/internal/config"
	"github.com/allisson/cardvault/internal/testutil"
)

const testMasterSecret = "integration-test-master-secret"

// TestAuditTrailSignature_EndToEnd verifies complete audit trail signing and verification workflow.
func TestAuditTrailSignature_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dbConfigs := []struct {
		name   string
		driver string
		dsn    string
	}{
		{
			name:   "PostgreSQL",
			driver: "postgres",
			dsn:    testutil.GetPostgresTestDSN(),
		},
		{
			name:   "MySQL",
			driver: "mysql",
			dsn:    testutil.GetMySQLTestDSN(),
		},
	}

	for _, dbConfig := range dbConfigs {
		t.Run(dbConfig.name, func(t *testing.T) {
			ctx := context.Background()
			driver := dbConfig.driver // Capture driver for inner test functions

			// Setup test database and dependencies
			testCtx := setupAuditTrailTestContext(t, driver, dbConfig.dsn)
			defer cleanupAuditTrailTestContext(t, testCtx)

			// Get repository from container and build a use case with a known secret
			auditLogRepo, err := testCtx.container.AuditLogRepository()
			require.NoError(t, err, "failed to get audit log repository")

			auditLogUseCase := auditUseCase.NewAuditLogUseCase(
				auditLogRepo,
				auditService.NewAuditSigner(),
				testMasterSecret,
			)

			accountID := testCtx.account.ID

			t.Run("RecordSignedEntry", func(t *testing.T) {
				clearAuditLogs(t, testCtx.db)

				metadata := map[string]any{
					"user_agent": "integration-test",
					"ip_address": "127.0.0.1",
				}

				err := auditLogUseCase.Record(ctx, accountID, auditDomain.ActionCardReveal, "cards/test", metadata)
				require.NoError(t, err, "failed to record audit log")

				// Retrieve the created entry
				logs, err := auditLogUseCase.ListByAccount(ctx, accountID, 0, 1)
				require.NoError(t, err, "failed to list audit logs")
				require.Len(t, logs, 1, "expected exactly one audit log")

				log := logs[0]

				// Verify signature fields are populated
				assert.NotEmpty(t, log.Signature, "signature should not be empty")
				assert.Equal(t, auditDomain.ActionCardReveal, log.Action)
				assert.Equal(t, "cards/test", log.Resource)

				// Full trail verification should report no tampered entries
				tampered, err := auditLogUseCase.VerifyAll(ctx)
				require.NoError(t, err, "trail verification should succeed")
				assert.Empty(t, tampered, "no entries should be flagged")
			})

			t.Run("TamperDetection", func(t *testing.T) {
				clearAuditLogs(t, testCtx.db)

				err := auditLogUseCase.Record(ctx, accountID, auditDomain.ActionCardPurge, "cards", nil)
				require.NoError(t, err, "failed to record audit log")

				// Retrieve the entry
				logs, err := auditLogUseCase.ListByAccount(ctx, accountID, 0, 1)
				require.NoError(t, err, "failed to list audit logs")
				require.Len(t, logs, 1, "expected exactly one audit log")

				log := logs[0]

				// Tamper with the entry by modifying the resource directly in the database
				var execErr error
				var result sql.Result
				if driver == "postgres" {
					result, execErr = testCtx.db.Exec(
						"UPDATE audit_logs SET resource = 'cards/tampered' WHERE id = $1",
						log.ID,
					)
				} else {
					// MySQL stores UUID as BINARY(16), need binary representation
					idBinary, marshalErr := log.ID.MarshalBinary()
					require.NoError(t, marshalErr, "failed to marshal UUID")
					result, execErr = testCtx.db.Exec(
						"UPDATE audit_logs SET resource = 'cards/tampered' WHERE id = ?",
						idBinary,
					)
				}
				require.NoError(t, execErr, "failed to tamper with audit log")

				// Verify the UPDATE actually modified a row
				rowsAffected, _ := result.RowsAffected()
				require.Equal(t, int64(1), rowsAffected, "UPDATE should affect exactly 1 row")

				// Trail verification should now flag the entry
				tampered, err := auditLogUseCase.VerifyAll(ctx)
				require.NoError(t, err, "trail verification should not error")
				require.Len(t, tampered, 1, "expected one tampered entry")
				assert.Equal(t, log.ID, tampered[0], "tampered entry ID should match")
			})

			t.Run("VerifyAll_MixedValidAndTampered", func(t *testing.T) {
				clearAuditLogs(t, testCtx.db)

				for i := 0; i < 3; i++ {
					resource := fmt.Sprintf("documents/batch-%d", i)
					err := auditLogUseCase.Record(ctx, accountID, auditDomain.ActionDocumentReveal, resource, nil)
					require.NoError(t, err, "failed to record audit log")

					time.Sleep(10 * time.Millisecond) // Ensure distinct timestamps
				}

				// Retrieve the entries, newest first
				logs, err := auditLogUseCase.ListByAccount(ctx, accountID, 0, 3)
				require.NoError(t, err, "failed to list audit logs")
				require.Len(t, logs, 3, "expected 3 audit logs")

				// Tamper with the middle entry
				tamperedID := logs[1].ID
				var execErr error
				if driver == "postgres" {
					_, execErr = testCtx.db.Exec(
						"UPDATE audit_logs SET action = 'card_purge' WHERE id = $1",
						tamperedID,
					)
				} else {
					// MySQL stores UUID as BINARY(16), need binary representation
					idBinary, marshalErr := tamperedID.MarshalBinary()
					require.NoError(t, marshalErr, "failed to marshal UUID")
					_, execErr = testCtx.db.Exec(
						"UPDATE audit_logs SET action = 'card_purge' WHERE id = ?",
						idBinary,
					)
				}
				require.NoError(t, execErr, "failed to tamper with audit log")

				// Only the tampered entry should be flagged
				tampered, err := auditLogUseCase.VerifyAll(ctx)
				require.NoError(t, err, "trail verification should not error")
				require.Len(t, tampered, 1, "expected one tampered entry")
				assert.Equal(t, tamperedID, tampered[0], "tampered entry ID should match")
			})

			t.Run("WrongMasterSecret", func(t *testing.T) {
				clearAuditLogs(t, testCtx.db)

				err := auditLogUseCase.Record(ctx, accountID, auditDomain.ActionFpsReveal, "fps-accounts/test", nil)
				require.NoError(t, err, "failed to record audit log")

				// A use case keyed with a different secret should flag every entry
				wrongSecretUseCase := auditUseCase.NewAuditLogUseCase(
					auditLogRepo,
					auditService.NewAuditSigner(),
					"a-completely-different-secret",
				)

				tampered, err := wrongSecretUseCase.VerifyAll(ctx)
				require.NoError(t, err, "trail verification should not error")
				assert.Len(t, tampered, 1, "entry signed with another secret should be flagged")
			})
		})
	}
}

// auditTrailTestContext holds test dependencies for audit trail signature tests.
type auditTrailTestContext struct {
	container *app.Container
	db        *sql.DB
	account   *authDomain.Account
}

// setupAuditTrailTestContext creates a test environment with database and a test account.
func setupAuditTrailTestContext(t *testing.T, driver, dsn string) *auditTrailTestContext {
	t.Helper()

	// Initialize test database with migrations
	var db *sql.DB
	if driver == "postgres" {
		db = testutil.SetupPostgresDB(t)
	} else {
		db = testutil.SetupMySQLDB(t)
	}

	// Create config with database settings
	cfg := &config.Config{
		DBDriver:             driver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		LogLevel:             "error",
		MasterSecret:         testMasterSecret,
		MetricsEnabled:       false,
		ServerPort:           8080,
		TOTPIssuer:           "cardvault-test",
	}

	// Create DI container
	container := app.NewContainer(cfg)

	// Create an account for foreign key relationships
	ctx := context.Background()
	accountUseCase, err := container.AccountUseCase()
	require.NoError(t, err, "failed to get account use case")

	account, _, err := accountUseCase.Create(ctx, "audit-integration@example.com", "correct horse battery staple")
	require.NoError(t, err, "failed to create test account")

	return &auditTrailTestContext{
		container: container,
		db:        db,
		account:   account,
	}
}

// cleanupAuditTrailTestContext closes database and container resources.
func cleanupAuditTrailTestContext(t *testing.T, testCtx *auditTrailTestContext) {
	t.Helper()

	if err := testCtx.container.Shutdown(context.Background()); err != nil {
		t.Logf("Warning: failed to shutdown container: %v", err)
	}

	if err := testCtx.db.Close(); err != nil {
		t.Logf("Warning: failed to close database: %v", err)
	}
}

// clearAuditLogs removes all audit trail entries so subtests start clean.
func clearAuditLogs(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("DELETE FROM audit_logs")
	require.NoError(t, err, "failed to clear audit_logs table")
}
