package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
)

// RunCreateAccount registers a new account and prints its API token. The
// plain token is shown exactly once; only its hash is stored.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAccount(
	ctx context.Context,
	accountUseCase authUseCase.AccountUseCase,
	logger *slog.Logger,
	writer io.Writer,
	email string,
	password string,
	format string,
) error {
	logger.Info("creating new account", slog.String("email", email))

	account, plainToken, err := accountUseCase.Create(ctx, email, password)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	// Output result based on format
	if format == "json" {
		if err := outputAccountJSON(writer, account, plainToken); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputAccountText(writer, account, plainToken)
	}

	logger.Info("account created successfully",
		slog.String("account_id", account.ID.String()),
		slog.String("email", email),
	)

	return nil
}

// outputAccountText outputs the created account in human-readable text format.
func outputAccountText(writer io.Writer, account *authDomain.Account, plainToken string) {
	_, _ = fmt.Fprintf(writer, "Account Created\n")
	_, _ = fmt.Fprintf(writer, "===============\n\n")
	_, _ = fmt.Fprintf(writer, "ID:        %s\n", account.ID)
	_, _ = fmt.Fprintf(writer, "Email:     %s\n", account.Email)
	_, _ = fmt.Fprintf(writer, "API Token: %s\n\n", plainToken)
	_, _ = fmt.Fprintf(writer, "Store the API token now - it is shown only once.\n")
}

// outputAccountJSON outputs the created account in JSON format for machine consumption.
func outputAccountJSON(writer io.Writer, account *authDomain.Account, plainToken string) error {
	result := map[string]interface{}{
		"id":        account.ID.String(),
		"email":     account.Email,
		"api_token": plainToken,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
