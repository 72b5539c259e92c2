package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundtrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "encargado1", "Ana Muñoz", "Encargado de Local", "ana@muni.cl", "secret", 12)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "encargado1", claims.Usuario)
	assert.Equal(t, "Encargado de Local", claims.Rol)
	assert.Equal(t, "ana@muni.cl", claims.Email)
	assert.Equal(t, "muni-votaciones", claims.Issuer)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "u", "n", "Digitador", "u@muni.cl", "secret", 12)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(7, "u", "n", "Digitador", "u@muni.cl", "secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-1", "refresh-secret", 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh-secret")
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "token-id-1", claims.TokenID)

	// Access and refresh tokens are not interchangeable.
	_, err = ValidateRefreshToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
