package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
	auditMocks "github.com/allisson/cardvault/internal/audit/usecase/mocks"
	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	apperrors "github.com/allisson/cardvault/internal/errors"
	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
	"github.com/allisson/cardvault/internal/fps/http/dto"
	"github.com/allisson/cardvault/internal/fps/http/mocks"
	fpsUseCase "github.com/allisson/cardvault/internal/fps/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fpsHandlerEnv struct {
	account *authDomain.Account
	fpsUC   *mocks.MockFpsUseCase
	auditUC *auditMocks.MockAuditLogUseCase
	router  *gin.Engine
}

func newFpsHandlerEnv() *fpsHandlerEnv {
	account := &authDomain.Account{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "user@example.com",
	}
	fpsUC := &mocks.MockFpsUseCase{}
	auditUC := &auditMocks.MockAuditLogUseCase{}

	handler := NewFpsHandler(fpsUC, auditUC, createTestLogger())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(authHTTP.WithAccount(c.Request.Context(), account))
		c.Next()
	})
	router.POST("/v1/fps", handler.CreateHandler)
	router.GET("/v1/fps", handler.ListHandler)
	router.GET("/v1/fps/banks", handler.BanksHandler)
	router.GET("/v1/fps/:id", handler.DetailHandler)
	router.PATCH("/v1/fps/:id", handler.UpdateHandler)
	router.DELETE("/v1/fps/:id", handler.DeleteHandler)

	return &fpsHandlerEnv{
		account: account,
		fpsUC:   fpsUC,
		auditUC: auditUC,
		router:  router,
	}
}

func (e *fpsHandlerEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	e.router.ServeHTTP(w, req)
	return w
}

func TestFpsHandler_Create(t *testing.T) {
	t.Run("stores an alias", func(t *testing.T) {
		env := newFpsHandlerEnv()

		fpsAccount := &fpsDomain.FpsAccount{
			ID:        uuid.Must(uuid.NewV7()),
			AccountID: env.account.ID,
			FpsID:     "12345678",
			Recipient: "Chan Tai Man",
			Bank:      "HSBC",
			CreatedAt: time.Now().UTC(),
		}
		env.fpsUC.On("Create", mock.Anything, env.account.ID, mock.MatchedBy(
			func(input fpsUseCase.CreateFpsInput) bool {
				return input.FpsID == "12345678" && input.Bank == "hsbc"
			},
		)).Return(fpsAccount, nil).Once()

		w := env.do(http.MethodPost, "/v1/fps", dto.CreateFpsRequest{
			FpsID:     "12345678",
			Recipient: "Chan Tai Man",
			Bank:      "hsbc",
			Note:      "rent",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.FpsSummaryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "12345678", response.FpsID)
		assert.Equal(t, "HSBC", response.Bank)
		env.fpsUC.AssertExpectations(t)
	})

	t.Run("malformed fps id fails validation", func(t *testing.T) {
		env := newFpsHandlerEnv()

		w := env.do(http.MethodPost, "/v1/fps", dto.CreateFpsRequest{
			FpsID:     "12ab5678",
			Recipient: "Chan Tai Man",
			Bank:      "HSBC",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env.fpsUC.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate fps id conflicts", func(t *testing.T) {
		env := newFpsHandlerEnv()

		env.fpsUC.On("Create", mock.Anything, env.account.ID, mock.Anything).
			Return(nil, apperrors.ErrConflict).Once()

		w := env.do(http.MethodPost, "/v1/fps", dto.CreateFpsRequest{
			FpsID:     "12345678",
			Recipient: "Chan Tai Man",
			Bank:      "HSBC",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestFpsHandler_List(t *testing.T) {
	env := newFpsHandlerEnv()

	env.fpsUC.On("List", mock.Anything, env.account.ID).Return([]*fpsDomain.FpsSummary{
		{ID: uuid.Must(uuid.NewV7()), FpsID: "12345678", Recipient: "Chan Tai Man", Bank: "HSBC"},
	}, nil).Once()

	w := env.do(http.MethodGet, "/v1/fps", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ListFpsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "12345678", response.Data[0].FpsID)
	// The raw body must never leak a note in the list projection.
	assert.NotContains(t, w.Body.String(), "note")
}

func TestFpsHandler_Banks(t *testing.T) {
	env := newFpsHandlerEnv()

	env.fpsUC.On("Banks").Return(fpsDomain.KnownBanks).Once()

	w := env.do(http.MethodGet, "/v1/fps/banks", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.BanksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Data, "HSBC")
}

func TestFpsHandler_Detail(t *testing.T) {
	t.Run("returns the note and records an audit entry", func(t *testing.T) {
		env := newFpsHandlerEnv()
		fpsAccountID := uuid.Must(uuid.NewV7())

		env.fpsUC.On("Detail", mock.Anything, env.account.ID, fpsAccountID).
			Return(&fpsDomain.FpsAccount{
				ID:    fpsAccountID,
				FpsID: "12345678",
				Note:  "sensitive note",
			}, nil).Once()
		env.auditUC.On("Record", mock.Anything, env.account.ID, auditDomain.ActionFpsReveal,
			fpsAccountID.String(), mock.Anything).Return(nil).Once()

		w := env.do(http.MethodGet, "/v1/fps/"+fpsAccountID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.FpsDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "sensitive note", response.Note)
		env.auditUC.AssertExpectations(t)
	})

	t.Run("unknown alias is not found", func(t *testing.T) {
		env := newFpsHandlerEnv()
		fpsAccountID := uuid.Must(uuid.NewV7())

		env.fpsUC.On("Detail", mock.Anything, env.account.ID, fpsAccountID).
			Return(nil, apperrors.ErrNotFound).Once()

		w := env.do(http.MethodGet, "/v1/fps/"+fpsAccountID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFpsHandler_Update(t *testing.T) {
	t.Run("partial update succeeds", func(t *testing.T) {
		env := newFpsHandlerEnv()
		fpsAccountID := uuid.Must(uuid.NewV7())

		env.fpsUC.On("Update", mock.Anything, env.account.ID, fpsAccountID, mock.MatchedBy(
			func(input fpsUseCase.UpdateFpsInput) bool {
				return input.Bank != nil && *input.Bank == "CITIBANK" && input.Recipient == nil
			},
		)).Return(nil).Once()

		bank := "CITIBANK"
		w := env.do(http.MethodPatch, "/v1/fps/"+fpsAccountID.String(), dto.UpdateFpsRequest{Bank: &bank})

		assert.Equal(t, http.StatusNoContent, w.Code)
		env.fpsUC.AssertExpectations(t)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		env := newFpsHandlerEnv()
		fpsAccountID := uuid.Must(uuid.NewV7())

		env.fpsUC.On("Update", mock.Anything, env.account.ID, fpsAccountID, mock.Anything).
			Return(fpsDomain.ErrNoFieldsToUpdate).Once()

		w := env.do(http.MethodPatch, "/v1/fps/"+fpsAccountID.String(), map[string]string{})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestFpsHandler_Delete(t *testing.T) {
	env := newFpsHandlerEnv()
	fpsAccountID := uuid.Must(uuid.NewV7())

	env.fpsUC.On("Delete", mock.Anything, env.account.ID, fpsAccountID).Return(nil).Once()

	w := env.do(http.MethodDelete, "/v1/fps/"+fpsAccountID.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	env.fpsUC.AssertExpectations(t)
}
