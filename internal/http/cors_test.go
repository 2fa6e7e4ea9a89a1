package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single origin", "https://app.example.com", []string{"https://app.example.com"}},
		{
			"multiple origins",
			"https://app.example.com,https://admin.example.com",
			[]string{"https://app.example.com", "https://admin.example.com"},
		},
		{
			"whitespace trimmed",
			" https://app.example.com , https://admin.example.com ",
			[]string{"https://app.example.com", "https://admin.example.com"},
		},
		{"only commas", ",,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origins := parseOrigins(tt.input)
			if tt.expected == nil {
				assert.Nil(t, origins)
				return
			}
			assert.Equal(t, tt.expected, origins)
		})
	}
}

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("disabled returns nil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(false, "https://app.example.com", logger))
	})

	t.Run("enabled without origins returns nil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, "", logger))
	})

	t.Run("enabled with origins applies headers", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "https://app.example.com", logger)
		assert.NotNil(t, middleware)

		router := gin.New()
		router.Use(middleware)
		router.POST("/v1/oauth/token", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/oauth/token", nil)
		req.Header.Set("Origin", "https://app.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed origin is rejected", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "https://app.example.com", logger)

		router := gin.New()
		router.Use(middleware)
		router.POST("/v1/oauth/token", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/oauth/token", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
