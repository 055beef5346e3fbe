package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	"github.com/allisson/cardvault/internal/auth/http/mocks"
	authService "github.com/allisson/cardvault/internal/auth/service"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// stepUpTestEnv wires a real guard with a fixed clock around mocked enrollment state.
type stepUpTestEnv struct {
	account     *authDomain.Account
	twoFactorUC *mocks.MockTwoFactorUseCase
	guard       *authService.StepUpGuard
	secret      string
	enrolled    *authDomain.TwoFactorEnrollment
	now         time.Time
}

func newStepUpTestEnv(t *testing.T) *stepUpTestEnv {
	t.Helper()

	now := time.Date(2025, 6, 15, 12, 0, 15, 0, time.UTC)
	cipher, err := cryptoService.NewAESCBCFieldCipher("test-master-secret")
	require.NoError(t, err)
	totpService := authService.NewTOTPServiceWithClock("cardvault", func() time.Time { return now })

	secret := "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"
	encryptedSecret, err := cipher.Encrypt(secret)
	require.NoError(t, err)

	account := &authDomain.Account{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "user@example.com",
	}

	return &stepUpTestEnv{
		account:     account,
		twoFactorUC: &mocks.MockTwoFactorUseCase{},
		guard:       authService.NewStepUpGuard(cipher, totpService),
		secret:      secret,
		enrolled: &authDomain.TwoFactorEnrollment{
			AccountID:       account.ID,
			Status:          authDomain.StatusEnrolled,
			EncryptedSecret: encryptedSecret,
		},
		now: now,
	}
}

// router builds a test router that authenticates the env account and applies
// the step-up middleware in front of a probe handler.
func (e *stepUpTestEnv) router(t *testing.T, probe gin.HandlerFunc) *gin.Engine {
	t.Helper()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithAccount(c.Request.Context(), e.account))
		c.Next()
	})
	router.Use(StepUpMiddleware(e.twoFactorUC, e.guard, createTestLogger()))
	handler := probe
	if handler == nil {
		handler = func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		}
	}
	router.POST("/sensitive", handler)
	router.GET("/sensitive", handler)
	return router
}

func (e *stepUpTestEnv) validCode(t *testing.T) string {
	t.Helper()
	code, err := totp.GenerateCodeCustom(e.secret, e.now, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	return code
}

func TestStepUpMiddleware_NotEnrolledPassesThrough(t *testing.T) {
	env := newStepUpTestEnv(t)
	env.twoFactorUC.On("Enrollment", mock.Anything, env.account.ID).
		Return(&authDomain.TwoFactorEnrollment{
			AccountID: env.account.ID,
			Status:    authDomain.StatusNotEnrolled,
		}, nil)

	router := env.router(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sensitive", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStepUpMiddleware_CodeFromHeader(t *testing.T) {
	env := newStepUpTestEnv(t)
	env.twoFactorUC.On("Enrollment", mock.Anything, env.account.ID).Return(env.enrolled, nil)

	router := env.router(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sensitive", nil)
	req.Header.Set("X-TOTP", env.validCode(t))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStepUpMiddleware_CodeFromBody(t *testing.T) {
	env := newStepUpTestEnv(t)
	env.twoFactorUC.On("Enrollment", mock.Anything, env.account.ID).Return(env.enrolled, nil)

	// Probe re-reads the body to prove the middleware restored it.
	router := env.router(t, func(c *gin.Context) {
		var payload map[string]string
		require.NoError(t, c.ShouldBindJSON(&payload))
		assert.Equal(t, "value", payload["field"])
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	body, err := json.Marshal(map[string]string{
		"field":     "value",
		"totp_code": env.validCode(t),
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sensitive", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStepUpMiddleware_CodeFromQuery(t *testing.T) {
	env := newStepUpTestEnv(t)
	env.twoFactorUC.On("Enrollment", mock.Anything, env.account.ID).Return(env.enrolled, nil)

	router := env.router(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sensitive?totp_code="+env.validCode(t), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStepUpMiddleware_HeaderTakesPriorityOverBody(t *testing.T) {
	env := newStepUpTestEnv(t)
	env.twoFactorUC.On("Enrollment", mock.Anything, env.account.ID).Return(env.enrolled, nil)

	router := env.router(t, nil)

	// Valid header, garbage body code: the header wins.
	body, err := json.Marshal(map[string]string{"totp_code": "000000"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sensitive", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-TOTP", env.validCode(t))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStepUpMiddleware_MissingCode(t *testing.T) {
	env := newStepUpTestEnv(t)
	env.twoFactorUC.On("Enrollment", mock.Anything, env.account.ID).Return(env.enrolled, nil)

	router := env.router(t, func(c *gin.Context) {
		t.Fatal("handler should not be called without a code")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sensitive", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStepUpMiddleware_InvalidCode(t *testing.T) {
	env := newStepUpTestEnv(t)
	env.twoFactorUC.On("Enrollment", mock.Anything, env.account.ID).Return(env.enrolled, nil)

	router := env.router(t, func(c *gin.Context) {
		t.Fatal("handler should not be called with a bad code")
	})

	wrong := "000000"
	if env.validCode(t) == wrong {
		wrong = "000001"
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sensitive", nil)
	req.Header.Set("X-TOTP", wrong)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStepUpMiddleware_StaleCode(t *testing.T) {
	env := newStepUpTestEnv(t)
	env.twoFactorUC.On("Enrollment", mock.Anything, env.account.ID).Return(env.enrolled, nil)

	router := env.router(t, nil)

	staleCode, err := totp.GenerateCodeCustom(env.secret, env.now.Add(-31*time.Minute), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sensitive", nil)
	req.Header.Set("X-TOTP", staleCode)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStepUpMiddleware_EnrollmentLoadError(t *testing.T) {
	env := newStepUpTestEnv(t)
	env.twoFactorUC.On("Enrollment", mock.Anything, env.account.ID).
		Return(nil, apperrors.New("database unavailable"))

	router := env.router(t, func(c *gin.Context) {
		t.Fatal("handler should not be called when enrollment lookup fails")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sensitive", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStepUpMiddleware_NoAccountInContext(t *testing.T) {
	env := newStepUpTestEnv(t)

	router := gin.New()
	router.Use(StepUpMiddleware(env.twoFactorUC, env.guard, createTestLogger()))
	router.GET("/sensitive", func(c *gin.Context) {
		t.Fatal("handler should not be called without an authenticated account")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sensitive", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
