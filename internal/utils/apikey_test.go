package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	plaintext, hash, err := GenerateAPIKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(plaintext, "csk_"))
	assert.NotEqual(t, plaintext, hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "le hash doit être au format bcrypt")
}

func TestVerifyAPIKey(t *testing.T) {
	plaintext, hash, err := GenerateAPIKey()
	require.NoError(t, err)

	assert.True(t, VerifyAPIKey(plaintext, hash))
	assert.False(t, VerifyAPIKey("csk_mauvaise-cle", hash))
	assert.False(t, VerifyAPIKey(plaintext, ""))
}

func TestGenerateAPIKey_Distinct(t *testing.T) {
	a, _, err := GenerateAPIKey()
	require.NoError(t, err)
	b, _, err := GenerateAPIKey()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
