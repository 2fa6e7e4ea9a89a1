package usecase

import (
	"context"
	"time"

	"github.com/allisson/oauth/internal/metrics"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
)

// grantUseCaseWithMetrics decorates GrantUseCase with metrics instrumentation.
type grantUseCaseWithMetrics struct {
	next    GrantUseCase
	metrics metrics.BusinessMetrics
}

// NewGrantUseCaseWithMetrics wraps a GrantUseCase with metrics recording.
func NewGrantUseCaseWithMetrics(useCase GrantUseCase, m metrics.BusinessMetrics) GrantUseCase {
	return &grantUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authorize records metrics for authorization code issuance.
func (g *grantUseCaseWithMetrics) Authorize(
	ctx context.Context,
	input oauthDomain.AuthorizeInput,
) (*oauthDomain.AuthorizeOutput, error) {
	start := time.Now()
	output, err := g.next.Authorize(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "grant", "authorize", status)
	g.metrics.RecordDuration(ctx, "grant", "authorize", time.Since(start), status)

	return output, err
}

// Token records metrics for token requests, labeled per grant type.
func (g *grantUseCaseWithMetrics) Token(
	ctx context.Context,
	input oauthDomain.TokenInput,
) (*oauthDomain.TokenOutput, error) {
	start := time.Now()
	output, err := g.next.Token(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}
	operation := "token_" + string(input.GrantType)

	g.metrics.RecordOperation(ctx, "grant", operation, status)
	g.metrics.RecordDuration(ctx, "grant", operation, time.Since(start), status)

	return output, err
}

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// FindByValue records metrics for token lookups.
func (t *tokenUseCaseWithMetrics) FindByValue(
	ctx context.Context,
	kind oauthDomain.TokenKind,
	value string,
) (*oauthDomain.Token, error) {
	start := time.Now()
	token, err := t.next.FindByValue(ctx, kind, value)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "token_find", status)
	t.metrics.RecordDuration(ctx, "token", "token_find", time.Since(start), status)

	return token, err
}

// Revoke records metrics for token revocations.
func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, value string) error {
	start := time.Now()
	err := t.next.Revoke(ctx, value)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "token_revoke", status)
	t.metrics.RecordDuration(ctx, "token", "token_revoke", time.Since(start), status)

	return err
}

// DeleteExpired records metrics for expired token cleanup runs.
func (t *tokenUseCaseWithMetrics) DeleteExpired(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	start := time.Now()
	deleted, err := t.next.DeleteExpired(ctx, retention)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "token_cleanup", status)
	t.metrics.RecordDuration(ctx, "token", "token_cleanup", time.Since(start), status)

	return deleted, err
}

// authenticatorUseCaseWithMetrics decorates AuthenticatorUseCase with metrics
// instrumentation.
type authenticatorUseCaseWithMetrics struct {
	next    AuthenticatorUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthenticatorUseCaseWithMetrics wraps an AuthenticatorUseCase with metrics recording.
func NewAuthenticatorUseCaseWithMetrics(
	useCase AuthenticatorUseCase,
	m metrics.BusinessMetrics,
) AuthenticatorUseCase {
	return &authenticatorUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authenticate records metrics for bearer credential validation.
func (a *authenticatorUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	credential string,
	requiredScopes []string,
) (*oauthDomain.Authentication, error) {
	start := time.Now()
	auth, err := a.next.Authenticate(ctx, credential, requiredScopes)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "token", "token_validate", status)
	a.metrics.RecordDuration(ctx, "token", "token_validate", time.Since(start), status)

	return auth, err
}
