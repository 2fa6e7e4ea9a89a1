// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/oauth/internal/validation"
)

// TokenRequest contains the form-encoded parameters of a token endpoint
// request (RFC 6749 section 4). Client credentials may arrive here or in a
// Basic authorization header; the header wins when both are present.
type TokenRequest struct {
	GrantType    string `form:"grant_type" json:"grant_type"`
	ClientID     string `form:"client_id" json:"client_id"`
	ClientSecret string `form:"client_secret" json:"client_secret"`
	Code         string `form:"code" json:"code"`
	RedirectURI  string `form:"redirect_uri" json:"redirect_uri"`
	RefreshToken string `form:"refresh_token" json:"refresh_token"`
	Username     string `form:"username" json:"username"`
	Password     string `form:"password" json:"password"`
	Scope        string `form:"scope" json:"scope"`
}

// Validate checks if the token request is valid.
func (r *TokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.GrantType,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ClientID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ScopeList splits the space-delimited scope parameter into identifiers.
// An absent parameter yields nil, which means the client's full permitted set.
func (r *TokenRequest) ScopeList() []string {
	if strings.TrimSpace(r.Scope) == "" {
		return nil
	}
	return strings.Fields(r.Scope)
}

// AuthorizeRequest contains the parameters of an authorization request:
// client identification from the front channel plus the resource-owner
// credentials.
type AuthorizeRequest struct {
	ClientID    string `form:"client_id" json:"client_id"`
	RedirectURI string `form:"redirect_uri" json:"redirect_uri"`
	Username    string `form:"username" json:"username"`
	Password    string `form:"password" json:"password"`
	Scope       string `form:"scope" json:"scope"`
}

// Validate checks if the authorize request is valid.
func (r *AuthorizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.RedirectURI,
			validation.Required,
			customValidation.AbsoluteURL,
		),
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}

// ScopeList splits the space-delimited scope parameter into identifiers.
func (r *AuthorizeRequest) ScopeList() []string {
	if strings.TrimSpace(r.Scope) == "" {
		return nil
	}
	return strings.Fields(r.Scope)
}

// RevokeRequest contains the parameters of a revocation request (RFC 7009).
type RevokeRequest struct {
	Token string `form:"token" json:"token"`
}

// Validate checks if the revoke request is valid.
func (r *RevokeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
