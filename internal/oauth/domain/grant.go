package domain

import "time"

// AuthorizeInput carries the decoded parameters of an authorization request:
// the resource-owner credentials plus the client identification from the
// redirect-based front channel.
type AuthorizeInput struct {
	ClientID    string
	RedirectURI string
	Username    string
	Password    string
	Scopes      []string
}

// AuthorizeOutput is the result of a successful authorization request: a
// single-use code the client exchanges for a token pair.
type AuthorizeOutput struct {
	Code      string
	ExpiresAt time.Time
}

// TokenInput carries the decoded parameters of a token request. Which fields
// are consulted depends on GrantType; the transport boundary performs no
// validation beyond decoding.
type TokenInput struct {
	GrantType    GrantType
	ClientID     string
	ClientSecret string

	// Authorization-code grant
	Code        string
	RedirectURI string

	// Refresh-token grant
	RefreshToken string

	// Password grant
	Username string
	Password string

	// Requested scopes; empty means the client's full permitted set.
	Scopes []string
}

// TokenOutput is the result of a successful token request.
type TokenOutput struct {
	// AccessToken is the signed JWT encoding of the issued access token.
	AccessToken string

	// TokenType is always "Bearer".
	TokenType string

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64

	// RefreshToken is the opaque refresh credential, empty for the
	// client-credentials grant.
	RefreshToken string

	// Scopes granted to the issued pair.
	Scopes []string
}
