// Package http provides the HTTP server wiring for the OAuth2 service.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/oauth/internal/config"
	"github.com/allisson/oauth/internal/metrics"
	oauthHTTP "github.com/allisson/oauth/internal/oauth/http"
	oauthUseCase "github.com/allisson/oauth/internal/oauth/usecase"
)

// Server represents the main API server for the protocol endpoints.
type Server struct {
	cfg             *config.Config
	db              *sql.DB
	tokenHandler    *oauthHTTP.TokenHandler
	authenticator   oauthUseCase.AuthenticatorUseCase
	metricsProvider *metrics.Provider
	server          *http.Server
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with required dependencies.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	tokenHandler *oauthHTTP.TokenHandler,
	authenticator oauthUseCase.AuthenticatorUseCase,
	metricsProvider *metrics.Provider,
	logger *slog.Logger,
) *Server {
	s := &Server{
		cfg:             cfg,
		db:              db,
		tokenHandler:    tokenHandler,
		authenticator:   authenticator,
		metricsProvider: metricsProvider,
		logger:          logger,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      s.createRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// createRouter builds the gin engine with middleware and routes.
func (s *Server) createRouter() *gin.Engine {
	gin.SetMode(s.cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			s.metricsProvider.MeterProvider(), s.cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(
		s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// The grant endpoints authenticate with client or resource-owner
	// credentials, so they sit behind the per-IP rate limiter instead of
	// the bearer middleware.
	protocol := router.Group("/v1/oauth")
	if s.cfg.RateLimitTokenEnabled {
		protocol.Use(oauthHTTP.TokenRateLimitMiddleware(
			s.cfg.RateLimitTokenRequestsPerSec,
			s.cfg.RateLimitTokenBurst,
			s.logger,
		))
	}
	protocol.POST("/authorize", s.tokenHandler.AuthorizeHandler)
	protocol.POST("/token", s.tokenHandler.TokenGrantHandler)
	protocol.POST("/revoke", s.tokenHandler.RevokeTokenHandler)

	router.GET("/v1/oauth/tokeninfo",
		oauthHTTP.AuthenticationMiddleware(s.authenticator, s.logger),
		s.tokenInfoHandler)

	return router
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness, including database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := http.StatusOK

	if s.db == nil {
		components["database"] = "error"
		status = http.StatusServiceUnavailable
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		status = http.StatusServiceUnavailable
	} else {
		components["database"] = "ok"
	}

	body := gin.H{"status": "ready", "components": components}
	if status != http.StatusOK {
		body["status"] = "not_ready"
	}

	c.JSON(status, body)
}

// tokenInfoHandler describes the bearer credential that authenticated the
// request. Any active access token may call it; no scopes are required.
func (s *Server) tokenInfoHandler(c *gin.Context) {
	auth, ok := oauthHTTP.GetAuthentication(c.Request.Context())
	if !ok || auth == nil || auth.Token == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active":     true,
		"token_type": "Bearer",
		"scope":      strings.Join(auth.Token.Scopes, " "),
		"username":   auth.Username,
		"expires_at": auth.Token.ExpiresAt,
	})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
