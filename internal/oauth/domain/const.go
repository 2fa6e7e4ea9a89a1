// Package domain defines the OAuth2 token issuance domain model.
// A single Token entity covers authorization codes, access tokens, and refresh
// tokens, discriminated by kind rather than by a type hierarchy.
package domain

// TokenKind discriminates the role a Token plays in the OAuth2 protocol.
type TokenKind string

const (
	// KindAccessToken is a short-lived credential presented on protected requests.
	KindAccessToken TokenKind = "access_token"

	// KindRefreshToken is a long-lived credential used to rotate an access token.
	KindRefreshToken TokenKind = "refresh_token"

	// KindAuthorizationCode is a single-use credential exchanged for a token pair.
	KindAuthorizationCode TokenKind = "authorization_code"
)

// TokenStatus is the soft-delete discriminator for tokens. Tokens are never
// hard-deleted by the issuance or validation paths; they only move from active
// to revoked, and never back.
type TokenStatus string

const (
	// StatusActive marks a token as usable (subject to its expiry).
	StatusActive TokenStatus = "active"

	// StatusRevoked marks a token as permanently unusable.
	StatusRevoked TokenStatus = "revoked"
)

// GrantType identifies the protocol flow used to obtain tokens.
type GrantType string

const (
	GrantTypeAuthorizationCode GrantType = "authorization_code"
	GrantTypeClientCredentials GrantType = "client_credentials"
	GrantTypeRefreshToken      GrantType = "refresh_token"
	GrantTypePassword          GrantType = "password"
)

// RootScope is the super-scope: a token carrying it satisfies any scope
// requirement.
const RootScope = "root"
