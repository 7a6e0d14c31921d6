package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("desk-pc", "secret", time.Hour, "card-inventory")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret", "card-inventory")
	require.NoError(t, err)
	assert.Equal(t, "desk-pc", claims.Subject)
	assert.Equal(t, "card-inventory", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	valid, err := GenerateJWT("desk-pc", "secret", time.Hour, "card-inventory")
	require.NoError(t, err)
	expired, err := GenerateJWT("desk-pc", "secret", -time.Minute, "card-inventory")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(valid, "other-secret", "card-inventory")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(valid, "secret", "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	_, err = ParseAndValidateJWT(expired, "secret", "")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT(valid, "", "")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	_, err := GenerateJWT("desk-pc", "", time.Hour, "")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
