package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	userDomain "github.com/allisson/oauth/internal/user/domain"
	userUsecase "github.com/allisson/oauth/internal/user/usecase"
)

// MockClientUseCase is a mock implementation of oauthUseCase.ClientUseCase.
type MockClientUseCase struct {
	mock.Mock
}

func (m *MockClientUseCase) CreateClient(
	ctx context.Context,
	input oauthDomain.CreateClientInput,
) (*oauthDomain.CreateClientOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.CreateClientOutput), args.Error(1)
}

func (m *MockClientUseCase) GetClient(
	ctx context.Context,
	clientID string,
) (*oauthDomain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.Client), args.Error(1)
}

func (m *MockClientUseCase) CreateScope(
	ctx context.Context,
	input oauthDomain.CreateScopeInput,
) (*oauthDomain.Scope, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.Scope), args.Error(1)
}

func (m *MockClientUseCase) ListScopes(ctx context.Context) ([]*oauthDomain.Scope, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*oauthDomain.Scope), args.Error(1)
}

// MockTokenUseCase is a mock implementation of oauthUseCase.TokenUseCase.
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

func (m *MockTokenUseCase) DeleteExpired(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserUseCase is a mock implementation of userUsecase.UseCase.
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) CreateUser(
	ctx context.Context,
	input userUsecase.CreateUserInput,
) (*userDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserUseCase) VerifyCredentials(
	ctx context.Context,
	username string,
	password string,
) (*userDomain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserUseCase) GetUserByID(
	ctx context.Context,
	id uuid.UUID,
) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}
