package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret1")))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestHashPassword_FreshSaltEachCall(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword_LongPassword(t *testing.T) {
	long := strings.Repeat("a", 80)

	hash, err := HashPassword(long)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(long[:MaxPasswordBytes])))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(long[:MaxPasswordBytes-1])))
}

func TestHashPassword_MultiByteLongPassword(t *testing.T) {
	long := strings.Repeat("é", 50)

	hash, err := HashPassword(long)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(long)[:MaxPasswordBytes]))
}
