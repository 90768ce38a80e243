package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT("user-1", "secret", time.Hour, "finance-tracker")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "finance-tracker", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, _, err := GenerateJWT("user-1", "secret", -time.Minute, "finance-tracker")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
