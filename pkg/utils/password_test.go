package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := CheckPasswordHash(hash, "s3cret-password")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPasswordHash(hash, "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPasswordHashMalformed(t *testing.T) {
	_, err := CheckPasswordHash("not-a-phc-string", "anything")
	require.Error(t, err)

	_, err = CheckPasswordHash("$bcrypt$whatever", "anything")
	require.Error(t, err)
}
