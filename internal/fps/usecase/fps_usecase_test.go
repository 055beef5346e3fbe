package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cardvault/internal/errors"
	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
	"github.com/allisson/cardvault/internal/fps/usecase"
	"github.com/allisson/cardvault/internal/fps/usecase/mocks"
)

func TestFpsUseCaseCreate(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	t.Run("stores a normalized alias", func(t *testing.T) {
		repo := new(mocks.MockFpsAccountRepository)
		uc := usecase.NewFpsUseCase(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(f *fpsDomain.FpsAccount) bool {
			return f.AccountID == accountID &&
				f.FpsID == "12345678" &&
				f.Recipient == "Chan Tai Man" &&
				f.Bank == "HANG SENG"
		})).Return(nil)

		fpsAccount, err := uc.Create(ctx, accountID, usecase.CreateFpsInput{
			FpsID:     " 12345678 ",
			Recipient: "Chan Tai Man",
			Bank:      "hang seng",
			Note:      "rent transfers",
		})

		require.NoError(t, err)
		assert.Equal(t, "HANG SENG", fpsAccount.Bank)
		assert.Equal(t, "rent transfers", fpsAccount.Note)
		repo.AssertExpectations(t)
	})

	t.Run("rejects malformed fps ids", func(t *testing.T) {
		repo := new(mocks.MockFpsAccountRepository)
		uc := usecase.NewFpsUseCase(repo)

		for _, fpsID := range []string{"1234567", "1234567890123", "12a45678", ""} {
			_, err := uc.Create(ctx, accountID, usecase.CreateFpsInput{
				FpsID:     fpsID,
				Recipient: "Chan Tai Man",
				Bank:      "HSBC",
			})
			assert.ErrorIs(t, err, fpsDomain.ErrFpsIDInvalid, "fps id %q", fpsID)
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate fps id surfaces conflict", func(t *testing.T) {
		repo := new(mocks.MockFpsAccountRepository)
		uc := usecase.NewFpsUseCase(repo)

		repo.On("Create", ctx, mock.Anything).Return(apperrors.ErrConflict)

		_, err := uc.Create(ctx, accountID, usecase.CreateFpsInput{
			FpsID:     "12345678",
			Recipient: "Chan Tai Man",
			Bank:      "HSBC",
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("long note is truncated", func(t *testing.T) {
		repo := new(mocks.MockFpsAccountRepository)
		uc := usecase.NewFpsUseCase(repo)

		repo.On("Create", ctx, mock.Anything).Return(nil)

		fpsAccount, err := uc.Create(ctx, accountID, usecase.CreateFpsInput{
			FpsID:     "12345678",
			Recipient: "Chan Tai Man",
			Bank:      "HSBC",
			Note:      strings.Repeat("n", fpsDomain.MaxNoteLength+50),
		})

		require.NoError(t, err)
		assert.Len(t, fpsAccount.Note, fpsDomain.MaxNoteLength)
	})
}

func TestFpsUseCaseList(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	repo := new(mocks.MockFpsAccountRepository)
	uc := usecase.NewFpsUseCase(repo)

	repo.On("ListByAccount", ctx, accountID).Return([]*fpsDomain.FpsAccount{
		{
			ID:        uuid.Must(uuid.NewV7()),
			AccountID: accountID,
			FpsID:     "12345678",
			Recipient: "Chan Tai Man",
			Bank:      "HSBC",
			Note:      "sensitive note",
			CreatedAt: time.Now().UTC(),
		},
	}, nil)

	summaries, err := uc.List(ctx, accountID)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "12345678", summaries[0].FpsID)
	// The note never appears in the list projection.
	assert.Equal(t, "HSBC", summaries[0].Bank)
}

func TestFpsUseCaseDetail(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())
	fpsAccountID := uuid.Must(uuid.NewV7())

	t.Run("returns the alias with note", func(t *testing.T) {
		repo := new(mocks.MockFpsAccountRepository)
		uc := usecase.NewFpsUseCase(repo)

		repo.On("Get", ctx, accountID, fpsAccountID).Return(&fpsDomain.FpsAccount{
			ID:    fpsAccountID,
			FpsID: "12345678",
			Note:  "sensitive note",
		}, nil)

		fpsAccount, err := uc.Detail(ctx, accountID, fpsAccountID)

		require.NoError(t, err)
		assert.Equal(t, "sensitive note", fpsAccount.Note)
	})

	t.Run("unknown alias is not found", func(t *testing.T) {
		repo := new(mocks.MockFpsAccountRepository)
		uc := usecase.NewFpsUseCase(repo)

		repo.On("Get", ctx, accountID, fpsAccountID).Return(nil, apperrors.ErrNotFound)

		_, err := uc.Detail(ctx, accountID, fpsAccountID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestFpsUseCaseUpdate(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())
	fpsAccountID := uuid.Must(uuid.NewV7())

	stored := func() *fpsDomain.FpsAccount {
		return &fpsDomain.FpsAccount{
			ID:        fpsAccountID,
			AccountID: accountID,
			FpsID:     "12345678",
			Recipient: "Chan Tai Man",
			Bank:      "HSBC",
			Note:      "old note",
		}
	}

	t.Run("updates supplied fields and keeps the rest", func(t *testing.T) {
		repo := new(mocks.MockFpsAccountRepository)
		uc := usecase.NewFpsUseCase(repo)

		repo.On("Get", ctx, accountID, fpsAccountID).Return(stored(), nil)
		repo.On("Update", ctx, mock.MatchedBy(func(f *fpsDomain.FpsAccount) bool {
			return f.FpsID == "12345678" &&
				f.Recipient == "Chan Tai Man" &&
				f.Bank == "CITIBANK" &&
				f.Note == ""
		})).Return(nil)

		bank := "citibank"
		note := ""
		err := uc.Update(ctx, accountID, fpsAccountID, usecase.UpdateFpsInput{
			Bank: &bank,
			Note: &note,
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		repo := new(mocks.MockFpsAccountRepository)
		uc := usecase.NewFpsUseCase(repo)

		err := uc.Update(ctx, accountID, fpsAccountID, usecase.UpdateFpsInput{})

		assert.ErrorIs(t, err, fpsDomain.ErrNoFieldsToUpdate)
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown alias is not found", func(t *testing.T) {
		repo := new(mocks.MockFpsAccountRepository)
		uc := usecase.NewFpsUseCase(repo)

		repo.On("Get", ctx, accountID, fpsAccountID).Return(nil, apperrors.ErrNotFound)

		recipient := "Someone Else"
		err := uc.Update(ctx, accountID, fpsAccountID, usecase.UpdateFpsInput{Recipient: &recipient})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestFpsUseCaseDelete(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())
	fpsAccountID := uuid.Must(uuid.NewV7())

	repo := new(mocks.MockFpsAccountRepository)
	uc := usecase.NewFpsUseCase(repo)

	repo.On("Delete", ctx, accountID, fpsAccountID).Return(nil)

	assert.NoError(t, uc.Delete(ctx, accountID, fpsAccountID))
	repo.AssertExpectations(t)
}

func TestFpsUseCaseBanks(t *testing.T) {
	uc := usecase.NewFpsUseCase(new(mocks.MockFpsAccountRepository))

	banks := uc.Banks()

	assert.NotEmpty(t, banks)
	assert.Contains(t, banks, "HSBC")
	assert.Contains(t, banks, "HANG SENG")
}
