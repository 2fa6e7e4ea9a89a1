// Package http provides HTTP handlers for the OAuth2 protocol endpoints.
package http

import (
	"context"

	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
)

// authenticationKey is a context key type for storing authentication results.
type authenticationKey struct{}

// WithAuthentication stores a validated bearer credential in the context.
// This is called by the authentication middleware after successful validation.
func WithAuthentication(ctx context.Context, auth *oauthDomain.Authentication) context.Context {
	return context.WithValue(ctx, authenticationKey{}, auth)
}

// GetAuthentication retrieves the validated bearer credential from the context.
// Returns (auth, true) if present, or (nil, false) if no middleware ran.
func GetAuthentication(ctx context.Context) (*oauthDomain.Authentication, bool) {
	auth, ok := ctx.Value(authenticationKey{}).(*oauthDomain.Authentication)
	return auth, ok
}
