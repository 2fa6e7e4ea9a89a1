package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is the unified token entity. Authorization codes, access tokens, and
// refresh tokens share this one shape; Kind discriminates behavior and
// kind-specific invariants are enforced at construction, not via subtypes.
type Token struct {
	ID uuid.UUID

	// Kind discriminates authorization codes, access tokens, and refresh tokens.
	Kind TokenKind

	// Value is the opaque random credential bearers present. Unique across all
	// tokens of all kinds for the lifetime of the store.
	Value string

	// ParentTokenID links a refresh token to the access token it was issued
	// alongside. Nil for access tokens and authorization codes.
	ParentTokenID *uuid.UUID

	// ClientID references the owning client.
	ClientID uuid.UUID

	// UserID is set when the grant is user-bound (authorization-code, password,
	// refresh of a user token). Nil for client-credentials tokens.
	UserID *uuid.UUID

	// Scopes granted to this token, fixed at creation.
	Scopes []string

	Status    TokenStatus
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token's expiry has passed at the given instant.
func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// Usable reports whether the token is active and unexpired at the given instant.
func (t *Token) Usable(now time.Time) bool {
	return t.Status == StatusActive && !t.Expired(now)
}

// Validate enforces the construction invariants of the unified entity: expiry
// after creation, a parent only (and always) on refresh tokens, and a non-empty
// credential value.
func (t *Token) Validate() error {
	if t.Value == "" {
		return ErrTokenValueRequired
	}

	if !t.ExpiresAt.After(t.CreatedAt) {
		return ErrTokenExpiryInvalid
	}

	switch t.Kind {
	case KindRefreshToken:
		if t.ParentTokenID == nil {
			return ErrRefreshParentRequired
		}
	case KindAccessToken, KindAuthorizationCode:
		if t.ParentTokenID != nil {
			return ErrParentNotAllowed
		}
	default:
		return ErrTokenKindUnknown
	}

	return nil
}
