// Package service provides the cryptographic collaborators of the OAuth core:
// secret hashing, random credential generation, and the JWT codec.
package service

import (
	"github.com/allisson/oauth/internal/oauth/domain"
)

// SecretService handles hashing and verification of client secrets and user
// passwords. The core treats verification as an opaque capability; hashing
// internals never leak past this interface.
type SecretService interface {
	// GenerateSecret creates a new random secret and returns both the plain
	// text (shown once) and the hash to persist.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	// HashSecret hashes a plain text secret for storage.
	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret performs a constant-time comparison between a plain secret
	// and its stored hash.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService generates the opaque random identifiers of the system: token
// values and public client IDs. Uniqueness is enforced by the store; callers
// regenerate on conflict.
type TokenService interface {
	// GenerateValue creates a new cryptographically secure token value.
	GenerateValue() (string, error)

	// GenerateClientID creates a new public client identifier.
	GenerateClientID() (string, error)
}

// JWTService encodes tokens into signed JWTs and decodes/verifies them back
// into claims. Encoding uses only the private key, decoding only the public
// key; both sides use RS256.
type JWTService interface {
	// Encode builds and signs the JWT for a token. The audience is the owning
	// client's public ID (the default audience is substituted when empty) and
	// the subject is the bound username, empty for client-credentials tokens.
	Encode(token *domain.Token, audience string, subject string) (string, error)

	// Decode parses a compact JWT, verifies its signature and validity window,
	// and returns its claims. Fails with ErrJWTMalformed, ErrJWTSignatureInvalid,
	// or ErrJWTExpired.
	Decode(signed string) (*Claims, error)
}
