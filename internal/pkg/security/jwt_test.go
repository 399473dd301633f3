package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, []string{"member"})
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, []string{"member"}, claims.Roles)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestGenerateRefreshTokenType(t *testing.T) {
	token, err := GenerateRefreshToken(42, nil)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestValidateTokenTampered(t *testing.T) {
	token, err := GenerateToken(42, nil)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".invalidsignature"

	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(42, nil)
	require.NoError(t, err)

	signature, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], signature)

	_, err = ExtractSignature("malformed")
	assert.Error(t, err)
}
