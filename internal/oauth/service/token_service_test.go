package service

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceGenerateValue(t *testing.T) {
	svc := NewTokenService()

	first, err := svc.GenerateValue()
	require.NoError(t, err)

	second, err := svc.GenerateValue()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	decoded, err := base64.URLEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}

func TestTokenServiceGenerateClientID(t *testing.T) {
	svc := NewTokenService()

	first, err := svc.GenerateClientID()
	require.NoError(t, err)

	second, err := svc.GenerateClientID()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 32)

	_, err = hex.DecodeString(first)
	assert.NoError(t, err)
}

func TestGenerateRSAKeyPair(t *testing.T) {
	privatePEM, publicPEM, err := GenerateRSAKeyPair(2048)
	require.NoError(t, err)

	assert.Contains(t, string(privatePEM), "PRIVATE KEY")
	assert.Contains(t, string(publicPEM), "PUBLIC KEY")
}
