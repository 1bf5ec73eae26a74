package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	Cost = bcrypt.MinCost

	h, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", h)

	assert.NoError(t, VerifyPassword("admin123", h))
	assert.Error(t, VerifyPassword("admin124", h))

	h2, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, h, h2, "hashes are salted")
}
