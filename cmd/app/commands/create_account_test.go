package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authMocks "github.com/allisson/cardvault/internal/auth/http/mocks"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

func TestRunCreateAccount(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	account := &authDomain.Account{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "user@example.com",
	}

	t.Run("success-text", func(t *testing.T) {
		mockUseCase := &authMocks.MockAccountUseCase{}
		mockUseCase.On("Create", ctx, "user@example.com", "correct horse battery").
			Return(account, "plain-api-token", nil)

		var out bytes.Buffer
		err := RunCreateAccount(ctx, mockUseCase, logger, &out, "user@example.com", "correct horse battery", "text")
		require.NoError(t, err)
		require.Contains(t, out.String(), "Account Created")
		require.Contains(t, out.String(), "plain-api-token")
		require.Contains(t, out.String(), "shown only once")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-json", func(t *testing.T) {
		mockUseCase := &authMocks.MockAccountUseCase{}
		mockUseCase.On("Create", ctx, "user@example.com", "correct horse battery").
			Return(account, "plain-api-token", nil)

		var out bytes.Buffer
		err := RunCreateAccount(ctx, mockUseCase, logger, &out, "user@example.com", "correct horse battery", "json")
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(out.Bytes(), &result)
		require.NoError(t, err)
		require.Equal(t, "user@example.com", result["email"])
		require.Equal(t, "plain-api-token", result["api_token"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("duplicate-email", func(t *testing.T) {
		mockUseCase := &authMocks.MockAccountUseCase{}
		mockUseCase.On("Create", ctx, "user@example.com", "correct horse battery").
			Return(nil, "", apperrors.ErrConflict)

		var out bytes.Buffer
		err := RunCreateAccount(ctx, mockUseCase, logger, &out, "user@example.com", "correct horse battery", "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create account")
	})
}
