package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceGenerateToken(t *testing.T) {
	service := NewTokenService()

	plainToken, tokenHash, err := service.GenerateToken()

	require.NoError(t, err)
	assert.NotEmpty(t, plainToken)
	assert.NotEmpty(t, tokenHash)
	assert.NotEqual(t, plainToken, tokenHash)
	assert.Equal(t, service.HashToken(plainToken), tokenHash)
}

func TestTokenServiceGenerateTokenUnique(t *testing.T) {
	service := NewTokenService()

	first, _, err := service.GenerateToken()
	require.NoError(t, err)
	second, _, err := service.GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenServiceHashTokenDeterministic(t *testing.T) {
	service := NewTokenService()

	assert.Equal(t, service.HashToken("token"), service.HashToken("token"))
	assert.NotEqual(t, service.HashToken("token"), service.HashToken("other"))
	assert.Len(t, service.HashToken("token"), 64)
}

func TestPasswordServiceHashAndCompare(t *testing.T) {
	service := NewPasswordService()

	hash, err := service.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, service.Compare("correct horse battery staple", hash))
	assert.False(t, service.Compare("wrong password", hash))
	assert.False(t, service.Compare("correct horse battery staple", "not-a-hash"))
}
