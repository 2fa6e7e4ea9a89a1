package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/oauth/internal/errors"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	"github.com/allisson/oauth/internal/oauth/service"
)

func TestTokenFactoryMint(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		tokenRepo := &MockTokenRepository{}
		factory := newTokenFactory(tokenRepo, service.NewTokenService())

		tokenRepo.On("Create", ctx, mock.AnythingOfType("*domain.Token")).Return(nil)

		token, err := factory.mint(ctx, tokenSpec{
			Kind:     oauthDomain.KindAccessToken,
			ClientID: clientID,
			Scopes:   []string{"read"},
			TTL:      time.Hour,
		})
		require.NoError(t, err)

		assert.Equal(t, oauthDomain.KindAccessToken, token.Kind)
		assert.NotEmpty(t, token.Value)
		assert.Equal(t, oauthDomain.StatusActive, token.Status)
		assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), token.ExpiresAt, 5*time.Second)
		tokenRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("regenerates on conflict", func(t *testing.T) {
		tokenRepo := &MockTokenRepository{}
		factory := newTokenFactory(tokenRepo, service.NewTokenService())

		tokenRepo.On("Create", ctx, mock.AnythingOfType("*domain.Token")).
			Return(oauthDomain.ErrTokenValueExists).Twice()
		tokenRepo.On("Create", ctx, mock.AnythingOfType("*domain.Token")).Return(nil).Once()

		token, err := factory.mint(ctx, tokenSpec{
			Kind:     oauthDomain.KindAccessToken,
			ClientID: clientID,
			Scopes:   []string{"read"},
			TTL:      time.Hour,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, token.Value)
		tokenRepo.AssertNumberOfCalls(t, "Create", 3)
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		tokenRepo := &MockTokenRepository{}
		factory := newTokenFactory(tokenRepo, service.NewTokenService())

		tokenRepo.On("Create", ctx, mock.AnythingOfType("*domain.Token")).
			Return(oauthDomain.ErrTokenValueExists)

		_, err := factory.mint(ctx, tokenSpec{
			Kind:     oauthDomain.KindAccessToken,
			ClientID: clientID,
			Scopes:   []string{"read"},
			TTL:      time.Hour,
		})
		assert.ErrorIs(t, err, apperrors.ErrInfrastructure)
		tokenRepo.AssertNumberOfCalls(t, "Create", maxGenerationAttempts)
	})

	t.Run("non-conflict errors are not retried", func(t *testing.T) {
		tokenRepo := &MockTokenRepository{}
		factory := newTokenFactory(tokenRepo, service.NewTokenService())

		infraErr := apperrors.Wrap(apperrors.ErrInfrastructure, "connection refused")
		tokenRepo.On("Create", ctx, mock.AnythingOfType("*domain.Token")).Return(infraErr)

		_, err := factory.mint(ctx, tokenSpec{
			Kind:     oauthDomain.KindAccessToken,
			ClientID: clientID,
			Scopes:   []string{"read"},
			TTL:      time.Hour,
		})
		assert.ErrorIs(t, err, apperrors.ErrInfrastructure)
		tokenRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("invalid spec fails construction", func(t *testing.T) {
		tokenRepo := &MockTokenRepository{}
		factory := newTokenFactory(tokenRepo, service.NewTokenService())

		// Refresh token without a parent violates a construction invariant.
		_, err := factory.mint(ctx, tokenSpec{
			Kind:     oauthDomain.KindRefreshToken,
			ClientID: clientID,
			Scopes:   []string{"read"},
			TTL:      time.Hour,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		tokenRepo.AssertNotCalled(t, "Create")
	})
}

// uniqueValueStore is a concurrency-safe TokenRepository standing in for the
// database unique constraint on tokens.value.
type uniqueValueStore struct {
	mu     sync.Mutex
	values map[string]struct{}
}

func (s *uniqueValueStore) Create(_ context.Context, token *oauthDomain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.values[token.Value]; exists {
		return oauthDomain.ErrTokenValueExists
	}
	s.values[token.Value] = struct{}{}
	return nil
}

func (s *uniqueValueStore) Get(context.Context, uuid.UUID) (*oauthDomain.Token, error) {
	return nil, oauthDomain.ErrTokenNotFound
}

func (s *uniqueValueStore) GetByValue(context.Context, oauthDomain.TokenKind, string) (*oauthDomain.Token, error) {
	return nil, oauthDomain.ErrTokenNotFound
}

func (s *uniqueValueStore) Revoke(context.Context, uuid.UUID) error { return nil }

func (s *uniqueValueStore) Consume(context.Context, uuid.UUID) error { return nil }

func (s *uniqueValueStore) RevokeByParentID(context.Context, uuid.UUID) error { return nil }

func (s *uniqueValueStore) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

func TestTokenFactoryMintConcurrent(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.Must(uuid.NewV7())

	store := &uniqueValueStore{values: make(map[string]struct{})}
	factory := newTokenFactory(store, service.NewTokenService())

	const workers = 100
	const mintsPerWorker = 100
	total := workers * mintsPerWorker

	values := make(chan string, total)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < mintsPerWorker; j++ {
				token, err := factory.mint(ctx, tokenSpec{
					Kind:     oauthDomain.KindAccessToken,
					ClientID: clientID,
					Scopes:   []string{"read"},
					TTL:      time.Hour,
				})
				if err != nil {
					t.Error(err)
					return
				}
				values <- token.Value
			}
		}()
	}
	wg.Wait()
	close(values)

	seen := make(map[string]struct{}, total)
	for value := range values {
		seen[value] = struct{}{}
	}
	assert.Len(t, seen, total)
}
