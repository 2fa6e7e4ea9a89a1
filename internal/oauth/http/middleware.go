// Package http provides HTTP handlers for the OAuth2 protocol endpoints.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/oauth/internal/errors"
	"github.com/allisson/oauth/internal/httputil"
	oauthUseCase "github.com/allisson/oauth/internal/oauth/usecase"
)

// AuthenticationMiddleware validates the Bearer JWT in the Authorization
// header and enforces the route's required scopes in a single pass.
//
// The header format is "Bearer <jwt>" with a case-insensitive prefix. A
// missing, malformed, expired, or revoked credential yields 401. A valid
// credential lacking any required scope yields 403 with the missing
// identifiers; a credential carrying the root scope passes every check.
//
// The validated authentication is stored in the request context and can be
// read downstream via GetAuthentication.
func AuthenticationMiddleware(
	authenticator oauthUseCase.AuthenticatorUseCase,
	logger *slog.Logger,
	requiredScopes ...string,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		credential := authHeader[len(bearerPrefix):]
		if credential == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		auth, err := authenticator.Authenticate(c.Request.Context(), credential, requiredScopes)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithAuthentication(c.Request.Context(), auth)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("token_id", auth.Token.ID.String()),
			slog.String("username", auth.Username))

		c.Next()
	}
}
