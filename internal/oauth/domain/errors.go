package domain

import (
	"fmt"
	"strings"

	"github.com/allisson/oauth/internal/errors"
)

// Not-found errors for registry lookups.
var (
	// ErrClientNotFound indicates a client with the specified identifier was not found.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrTokenNotFound indicates a token with the specified value was not found.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrScopeNotFound indicates a scope with the specified identifier was not found.
	ErrScopeNotFound = errors.Wrap(errors.ErrNotFound, "scope not found")
)

// Uniqueness conflicts surfaced by the store. Token and client identifier
// conflicts drive the retry-until-unique generation loop.
var (
	// ErrTokenValueExists indicates the generated token value collided with a stored one.
	ErrTokenValueExists = errors.Wrap(errors.ErrConflict, "token value already exists")

	// ErrClientIDExists indicates the generated public client ID collided with a stored one.
	ErrClientIDExists = errors.Wrap(errors.ErrConflict, "client id already exists")

	// ErrScopeAlreadyExists indicates a scope with the same identifier already exists.
	ErrScopeAlreadyExists = errors.Wrap(errors.ErrConflict, "scope already exists")

	// ErrTokenNotActive indicates a consume found no active row to transition:
	// the credential was already spent or revoked by a concurrent request.
	ErrTokenNotActive = errors.Wrap(errors.ErrConflict, "token is not active")
)

// Grant-flow errors, matching the OAuth2 error taxonomy. These are classified
// results: the transport boundary maps them to RFC 6749 error codes and they
// must never absorb infrastructure failures.
var (
	// ErrInvalidClient indicates an unknown client, an inactive client, or a bad secret.
	ErrInvalidClient = errors.New("invalid client")

	// ErrInvalidGrant indicates a bad, expired, or revoked code or refresh
	// token, a redirect URI mismatch, or bad resource-owner credentials.
	ErrInvalidGrant = errors.New("invalid grant")

	// ErrInvalidScope indicates a requested scope is unknown or not permitted
	// for the client. Unauthorized scopes fail the request; they are never
	// silently dropped.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrUnsupportedGrantType indicates the grant type is not one of the four
	// supported flows.
	ErrUnsupportedGrantType = errors.New("unsupported grant type")
)

// Token construction invariant violations.
var (
	ErrTokenValueRequired    = errors.Wrap(errors.ErrInvalidInput, "token value is required")
	ErrTokenExpiryInvalid    = errors.Wrap(errors.ErrInvalidInput, "token expiry must be after creation")
	ErrRefreshParentRequired = errors.Wrap(errors.ErrInvalidInput, "refresh token requires a parent access token")
	ErrParentNotAllowed      = errors.Wrap(errors.ErrInvalidInput, "only refresh tokens may reference a parent")
	ErrTokenKindUnknown      = errors.Wrap(errors.ErrInvalidInput, "unknown token kind")
)

// JWT verification failures. All of them unwrap to ErrUnauthorized so the
// bearer path uniformly yields an unauthenticated result.
var (
	// ErrJWTMalformed indicates the credential is not a parseable JWT.
	ErrJWTMalformed = errors.Wrap(errors.ErrUnauthorized, "malformed jwt")

	// ErrJWTSignatureInvalid indicates the signature does not verify against
	// the issuer's public key.
	ErrJWTSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid jwt signature")

	// ErrJWTExpired indicates now is outside the token's nbf/exp window.
	ErrJWTExpired = errors.Wrap(errors.ErrUnauthorized, "jwt outside validity window")

	// ErrTokenRevoked indicates a verifiable JWT whose backing token is
	// revoked, expired, or absent from the store.
	ErrTokenRevoked = errors.Wrap(errors.ErrUnauthorized, "token revoked or unknown")
)

// MissingScopesError reports a valid credential with insufficient scopes. It
// unwraps to ErrForbidden, keeping the 401/403 distinction intact end-to-end
// while carrying the exact missing identifiers.
type MissingScopesError struct {
	Scopes []string
}

// Error implements the error interface.
func (e *MissingScopesError) Error() string {
	return fmt.Sprintf("missing required scopes: %s", strings.Join(e.Scopes, ", "))
}

// Unwrap classifies the error as forbidden rather than unauthenticated.
func (e *MissingScopesError) Unwrap() error {
	return errors.ErrForbidden
}
