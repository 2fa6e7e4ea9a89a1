// Package http provides HTTP handlers for the OAuth2 protocol endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/oauth/internal/errors"
	"github.com/allisson/oauth/internal/httputil"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	"github.com/allisson/oauth/internal/oauth/http/dto"
	oauthUseCase "github.com/allisson/oauth/internal/oauth/usecase"
	customValidation "github.com/allisson/oauth/internal/validation"
)

// TokenHandler handles the protocol endpoints: authorize, token, and revoke.
// Requests are accepted form-encoded (RFC 6749) or as JSON.
type TokenHandler struct {
	grantUseCase oauthUseCase.GrantUseCase
	tokenUseCase oauthUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	grantUseCase oauthUseCase.GrantUseCase,
	tokenUseCase oauthUseCase.TokenUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		grantUseCase: grantUseCase,
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// AuthorizeHandler verifies resource-owner credentials and mints a single-use
// authorization code bound to the user, client, and granted scopes.
// POST /v1/oauth/authorize - No bearer authentication (this is a sign-in surface).
func (h *TokenHandler) AuthorizeHandler(c *gin.Context) {
	var req dto.AuthorizeRequest

	if err := c.ShouldBind(&req); err != nil {
		httputil.HandleOAuthErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()), h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleOAuthErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := oauthDomain.AuthorizeInput{
		ClientID:    req.ClientID,
		RedirectURI: req.RedirectURI,
		Username:    req.Username,
		Password:    req.Password,
		Scopes:      req.ScopeList(),
	}

	output, err := h.grantUseCase.Authorize(c.Request.Context(), input)
	if err != nil {
		httputil.HandleOAuthErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AuthorizeResponse{
		Code:      output.Code,
		ExpiresAt: output.ExpiresAt,
	})
}

// TokenGrantHandler exchanges a grant for a token pair. All four grant types
// are dispatched through the same endpoint, keyed by the grant_type parameter.
// POST /v1/oauth/token - Client authentication via Basic header or body fields.
func (h *TokenHandler) TokenGrantHandler(c *gin.Context) {
	var req dto.TokenRequest

	if err := c.ShouldBind(&req); err != nil {
		httputil.HandleOAuthErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()), h.logger)
		return
	}

	// A Basic authorization header overrides body credentials.
	if clientID, clientSecret, ok := c.Request.BasicAuth(); ok {
		req.ClientID = clientID
		req.ClientSecret = clientSecret
	}

	if err := req.Validate(); err != nil {
		httputil.HandleOAuthErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := oauthDomain.TokenInput{
		GrantType:    oauthDomain.GrantType(req.GrantType),
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Code:         req.Code,
		RedirectURI:  req.RedirectURI,
		RefreshToken: req.RefreshToken,
		Username:     req.Username,
		Password:     req.Password,
		Scopes:       req.ScopeList(),
	}

	output, err := h.grantUseCase.Token(c.Request.Context(), input)
	if err != nil {
		httputil.HandleOAuthErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.MapTokenOutputToResponse(output))
}

// RevokeTokenHandler revokes a token and its lineage. Revoking an unknown or
// already-revoked value still returns 200 (RFC 7009), so callers learn nothing
// about which values exist.
// POST /v1/oauth/revoke
func (h *TokenHandler) RevokeTokenHandler(c *gin.Context) {
	var req dto.RevokeRequest

	if err := c.ShouldBind(&req); err != nil {
		httputil.HandleOAuthErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()), h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleOAuthErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), req.Token); err != nil {
		httputil.HandleOAuthErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusOK)
}
