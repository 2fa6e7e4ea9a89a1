package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
)

// MockGrantUseCase is a mock implementation of usecase.GrantUseCase.
type MockGrantUseCase struct {
	mock.Mock
}

func (m *MockGrantUseCase) Authorize(
	ctx context.Context,
	input oauthDomain.AuthorizeInput,
) (*oauthDomain.AuthorizeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.AuthorizeOutput), args.Error(1)
}

func (m *MockGrantUseCase) Token(
	ctx context.Context,
	input oauthDomain.TokenInput,
) (*oauthDomain.TokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.TokenOutput), args.Error(1)
}

// MockTokenUseCase is a mock implementation of usecase.TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

func (m *MockTokenUseCase) FindByValue(
	ctx context.Context,
	kind oauthDomain.TokenKind,
	value string,
) (*oauthDomain.Token, error) {
	args := m.Called(ctx, kind, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.Token), args.Error(1)
}

func (m *MockTokenUseCase) Revoke(ctx context.Context, value string) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockTokenUseCase) DeleteExpired(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuthenticatorUseCase is a mock implementation of usecase.AuthenticatorUseCase.
type MockAuthenticatorUseCase struct {
	mock.Mock
}

func (m *MockAuthenticatorUseCase) Authenticate(
	ctx context.Context,
	credential string,
	requiredScopes []string,
) (*oauthDomain.Authentication, error) {
	args := m.Called(ctx, credential, requiredScopes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.Authentication), args.Error(1)
}
