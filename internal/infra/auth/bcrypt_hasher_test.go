package auth

import (
	"testing"

	"pulse/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, hasher.Check("correct horse battery staple", hash))
	assert.False(t, hasher.Check("wrong password", hash))
}

func TestBcryptHasher_UniqueSalts(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})

	first, err := hasher.Hash("same input")
	require.NoError(t, err)
	second, err := hasher.Hash("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("same input", first))
	assert.True(t, hasher.Check("same input", second))
}

func TestBcryptHasher_CheckRejectsGarbageHash(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	assert.False(t, hasher.Check("anything", "not-a-bcrypt-hash"))
}
