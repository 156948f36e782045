package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	SetSigningKey("test-key")

	token, err := GenerateToken("u1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
	assert.Equal(t, "alice", claims.Name)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
}

func TestValidateRejectsGarbage(t *testing.T) {
	SetSigningKey("test-key")

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	SetSigningKey("test-key")
	token, err := GenerateToken("u1", "alice")
	require.NoError(t, err)

	SetSigningKey("other-key")
	defer SetSigningKey("test-key")

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	SetSigningKey("test-key")

	claims := &Claims{
		Name: "alice",
		StandardClaims: jwt.StandardClaims{
			Subject:   "u1",
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
