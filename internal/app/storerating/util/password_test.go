package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Password1!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Password1!", hash)
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	// bcrypt использует соль, хэши одного пароля различаются
	hash1, err := HashPassword("Password1!")
	require.NoError(t, err)
	hash2, err := HashPassword("Password1!")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password1!")
	require.NoError(t, err)

	assert.True(t, CheckPassword("Password1!", hash))
	assert.False(t, CheckPassword("WrongPass1!", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPassword_PlaintextStoredValue(t *testing.T) {
	// Plaintext в колонке хэша не проходит bcrypt-проверку
	assert.False(t, CheckPassword("Password1!", "Password1!"))
}
