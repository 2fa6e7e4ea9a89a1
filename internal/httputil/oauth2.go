package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/oauth/internal/errors"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
)

// OAuthErrorResponse is the RFC 6749 error shape returned by the protocol
// endpoints (authorize/token/revoke).
type OAuthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// HandleOAuthErrorGin maps grant-flow errors to the RFC 6749 error codes and
// status codes. Infrastructure failures stay 500/server_error; they are never
// reported as a rejected credential.
func HandleOAuthErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var response OAuthErrorResponse

	switch {
	case apperrors.Is(err, oauthDomain.ErrInvalidClient):
		statusCode = http.StatusUnauthorized
		response = OAuthErrorResponse{
			Error:            "invalid_client",
			ErrorDescription: "Client authentication failed",
		}
		c.Header("WWW-Authenticate", `Basic realm="oauth"`)

	case apperrors.Is(err, oauthDomain.ErrInvalidGrant):
		statusCode = http.StatusBadRequest
		response = OAuthErrorResponse{
			Error:            "invalid_grant",
			ErrorDescription: "The provided authorization grant is invalid, expired, or revoked",
		}

	case apperrors.Is(err, oauthDomain.ErrInvalidScope):
		statusCode = http.StatusBadRequest
		response = OAuthErrorResponse{
			Error:            "invalid_scope",
			ErrorDescription: "The requested scope is invalid or exceeds what the client may request",
		}

	case apperrors.Is(err, oauthDomain.ErrUnsupportedGrantType):
		statusCode = http.StatusBadRequest
		response = OAuthErrorResponse{
			Error:            "unsupported_grant_type",
			ErrorDescription: "The authorization grant type is not supported",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		response = OAuthErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: err.Error(),
		}

	default:
		statusCode = http.StatusInternalServerError
		response = OAuthErrorResponse{
			Error: "server_error",
		}
	}

	if logger != nil {
		logger.Error("oauth request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", response.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, response)
}
