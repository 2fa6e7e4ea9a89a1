package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretService(t *testing.T) {
	svc := NewSecretService()

	t.Run("generate returns plain and hash", func(t *testing.T) {
		plain, hashed, err := svc.GenerateSecret()
		require.NoError(t, err)

		assert.NotEmpty(t, plain)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, plain, hashed)
		assert.True(t, svc.CompareSecret(plain, hashed))
	})

	t.Run("compare rejects wrong secret", func(t *testing.T) {
		_, hashed, err := svc.GenerateSecret()
		require.NoError(t, err)

		assert.False(t, svc.CompareSecret("wrong-secret", hashed))
	})

	t.Run("compare rejects invalid hash", func(t *testing.T) {
		assert.False(t, svc.CompareSecret("secret", "not-a-valid-hash"))
	})

	t.Run("hash is salted", func(t *testing.T) {
		first, err := svc.HashSecret("same-secret")
		require.NoError(t, err)

		second, err := svc.HashSecret("same-secret")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
