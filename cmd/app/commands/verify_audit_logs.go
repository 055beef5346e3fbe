package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	auditUseCase "github.com/allisson/cardvault/internal/audit/usecase"
)

// RunVerifyAuditLogs verifies the cryptographic integrity of the whole audit
// trail. Recomputes the HMAC-SHA256 signature of every entry and reports the
// IDs of entries whose signature no longer matches their contents.
//
// Requirements: Database must be migrated and the master secret configured.
func RunVerifyAuditLogs(
	ctx context.Context,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("verifying audit log signatures")

	tampered, err := auditLogUseCase.VerifyAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	// Output result based on format
	if format == "json" {
		if err := outputVerifyJSON(writer, tampered); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputVerifyText(writer, tampered)
	}

	logger.Info("verification completed",
		slog.Int("tampered", len(tampered)),
	)

	// Exit with error code if integrity check failed
	if len(tampered) > 0 {
		return fmt.Errorf("integrity check failed: %d tampered entries", len(tampered))
	}

	return nil
}

// outputVerifyText outputs the verification result in human-readable text format.
func outputVerifyText(writer io.Writer, tampered []uuid.UUID) {
	_, _ = fmt.Fprintf(writer, "Audit Log Integrity Verification\n")
	_, _ = fmt.Fprintf(writer, "=================================\n\n")

	if len(tampered) > 0 {
		_, _ = fmt.Fprintf(writer, "WARNING: %d entries failed integrity check!\n\n", len(tampered))
		_, _ = fmt.Fprintf(writer, "Tampered Entry IDs:\n")
		for _, id := range tampered {
			_, _ = fmt.Fprintf(writer, "  - %s\n", id)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
		return
	}

	_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
}

// outputVerifyJSON outputs the verification result in JSON format for machine consumption.
func outputVerifyJSON(writer io.Writer, tampered []uuid.UUID) error {
	tamperedIDs := make([]string, 0, len(tampered))
	for _, id := range tampered {
		tamperedIDs = append(tamperedIDs, id.String())
	}

	result := map[string]interface{}{
		"tampered_count": len(tampered),
		"tampered_logs":  tamperedIDs,
		"passed":         len(tampered) == 0,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
