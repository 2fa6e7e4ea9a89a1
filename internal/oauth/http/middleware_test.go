package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/oauth/internal/errors"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
)

func runMiddleware(
	t *testing.T,
	authenticator *MockAuthenticatorUseCase,
	authHeader string,
	requiredScopes ...string,
) (*httptest.ResponseRecorder, bool, *oauthDomain.Authentication) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var reached bool
	var captured *oauthDomain.Authentication

	w := httptest.NewRecorder()
	_, router := gin.CreateTestContext(w)
	router.GET("/protected",
		AuthenticationMiddleware(authenticator, logger, requiredScopes...),
		func(c *gin.Context) {
			reached = true
			captured, _ = GetAuthentication(c.Request.Context())
			c.Status(http.StatusOK)
		})

	req, err := http.NewRequest(http.MethodGet, "/protected", nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)

	return w, reached, captured
}

func TestAuthenticationMiddleware(t *testing.T) {
	token := &oauthDomain.Token{
		ID:     uuid.Must(uuid.NewV7()),
		Kind:   oauthDomain.KindAccessToken,
		Scopes: []string{"read"},
	}

	t.Run("valid credential reaches handler", func(t *testing.T) {
		authenticator := &MockAuthenticatorUseCase{}
		authenticator.On("Authenticate", mock.Anything, "the.jwt.value", []string{"read"}).
			Return(&oauthDomain.Authentication{Token: token, Username: "alice"}, nil)

		w, reached, auth := runMiddleware(t, authenticator, "Bearer the.jwt.value", "read")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, reached)
		require.NotNil(t, auth)
		assert.Equal(t, "alice", auth.Username)
		authenticator.AssertExpectations(t)
	})

	t.Run("bearer prefix is case insensitive", func(t *testing.T) {
		authenticator := &MockAuthenticatorUseCase{}
		authenticator.On("Authenticate", mock.Anything, "the.jwt.value", []string(nil)).
			Return(&oauthDomain.Authentication{Token: token}, nil)

		w, reached, _ := runMiddleware(t, authenticator, "bEaReR the.jwt.value")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, reached)
	})

	t.Run("missing header", func(t *testing.T) {
		authenticator := &MockAuthenticatorUseCase{}

		w, reached, _ := runMiddleware(t, authenticator, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
		authenticator.AssertNotCalled(t, "Authenticate")
	})

	t.Run("malformed header", func(t *testing.T) {
		authenticator := &MockAuthenticatorUseCase{}

		w, reached, _ := runMiddleware(t, authenticator, "Basic dXNlcjpwYXNz")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
		authenticator.AssertNotCalled(t, "Authenticate")
	})

	t.Run("rejected credential", func(t *testing.T) {
		authenticator := &MockAuthenticatorUseCase{}
		authenticator.On("Authenticate", mock.Anything, "expired.jwt", []string(nil)).
			Return(nil, oauthDomain.ErrJWTExpired)

		w, reached, _ := runMiddleware(t, authenticator, "Bearer expired.jwt")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
	})

	t.Run("missing scopes yield 403 with identifiers", func(t *testing.T) {
		authenticator := &MockAuthenticatorUseCase{}
		authenticator.On("Authenticate", mock.Anything, "the.jwt.value", []string{"write", "delete"}).
			Return(nil, apperrors.Wrap(
				&oauthDomain.MissingScopesError{Scopes: []string{"delete"}}, "scope check failed"))

		w, reached, _ := runMiddleware(t, authenticator, "Bearer the.jwt.value", "write", "delete")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, reached)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []any{"delete"}, body["missing_scopes"])
	})
}
