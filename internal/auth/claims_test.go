package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, sub, email, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: sub,
		},
	})
	signed, err := token.SignedString([]byte("a-secret-this-client-never-sees"))
	require.NoError(t, err)
	return signed
}

func TestDecodeTokenWithoutVerification(t *testing.T) {
	// The client never holds the signing secret; the payload decodes anyway.
	tok := signedToken(t, "u42", "admin@example.com", "ADMIN")

	claims, err := DecodeToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u42", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)

	user := claims.User()
	assert.Equal(t, "u42", user.ID)
	assert.True(t, user.IsAdmin())
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	_, err := DecodeToken("not-a-jwt")
	assert.Error(t, err)

	_, err = DecodeToken("")
	assert.Error(t, err)
}
