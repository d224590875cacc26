package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "6c9f49de-7e39-4b78-a1b5-2f85f4e5f9a0",
		Email: "ana@x.com",
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	token, expiresAt, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, "6c9f49de-7e39-4b78-a1b5-2f85f4e5f9a0", claims.Subject)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	assert.Equal(t, 24*time.Hour, tm.TTL())
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)
	other := NewTokenManager("other-secret", 1)

	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	claims := &Claims{
		Email: "ana@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "some-id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(expired)
	assert.Error(t, err)
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "ana@x.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ParseToken(unsigned)
	assert.Error(t, err)
}

func TestTokenManager_Tampered(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = tm.ParseToken(token + "x")
	assert.Error(t, err)
}
