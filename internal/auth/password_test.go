package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, ComparePassword(hash, "secret1"))
	assert.Error(t, ComparePassword(hash, "secret2"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	// salt is generated per call, both must still verify
	assert.NotEqual(t, first, second)
	assert.NoError(t, ComparePassword(first, "secret1"))
	assert.NoError(t, ComparePassword(second, "secret1"))
}

func TestHashPassword_CostHonored(t *testing.T) {
	hash, err := HashPassword("secret1", 6)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 6, cost)
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("secret1", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
}

func TestComparePassword_InvalidHash(t *testing.T) {
	assert.Error(t, ComparePassword("not-a-bcrypt-hash", "secret1"))
}
