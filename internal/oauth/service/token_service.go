package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/allisson/oauth/internal/errors"
)

// tokenService implements TokenService with crypto/rand draws.
type tokenService struct{}

// GenerateValue creates a new cryptographically secure 32-byte token value,
// base64 URL-encoded. Values are unique only once the store accepts them; the
// token factory retries with a fresh draw on conflict.
func (t *tokenService) GenerateValue() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random token value")
	}

	return base64.URLEncoding.EncodeToString(randomBytes), nil
}

// GenerateClientID creates a new 16-byte public client identifier, hex-encoded.
func (t *tokenService) GenerateClientID() (string, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random client id")
	}

	return hex.EncodeToString(randomBytes), nil
}

// NewTokenService creates a new TokenService instance.
func NewTokenService() TokenService {
	return &tokenService{}
}
