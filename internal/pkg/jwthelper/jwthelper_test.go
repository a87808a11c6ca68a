package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("cle-de-test")

	token, err := GenerateToken(key, 42, "curl/8.0")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "curl/8.0", claims.UserAgent)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseTokenWrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("bonne-cle"), 42, "curl/8.0")
	require.NoError(t, err)

	_, err = ParseToken([]byte("mauvaise-cle"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken([]byte("cle"), "pas.un.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
