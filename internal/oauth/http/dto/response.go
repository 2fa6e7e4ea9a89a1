// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"strings"
	"time"

	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
)

// TokenResponse is the RFC 6749 success shape returned by the token endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope"`
}

// MapTokenOutputToResponse converts a grant result to the wire shape.
// Granted scopes are joined into a single space-delimited parameter.
func MapTokenOutputToResponse(output *oauthDomain.TokenOutput) TokenResponse {
	return TokenResponse{
		AccessToken:  output.AccessToken,
		TokenType:    output.TokenType,
		ExpiresIn:    output.ExpiresIn,
		RefreshToken: output.RefreshToken,
		Scope:        strings.Join(output.Scopes, " "),
	}
}

// AuthorizeResponse contains the single-use authorization code.
type AuthorizeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}
