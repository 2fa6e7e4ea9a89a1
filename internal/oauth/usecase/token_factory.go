package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/oauth/internal/errors"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	"github.com/allisson/oauth/internal/oauth/service"
)

// maxGenerationAttempts bounds the retry-until-unique loops for token values
// and public client IDs. Collisions on 32 random bytes are vanishingly rare,
// so hitting the bound means the store is misbehaving.
const maxGenerationAttempts = 20

// tokenFactory constructs and persists tokens, retrying with a fresh random
// value when the store reports a uniqueness conflict. Uniqueness is
// conflict-driven: there is no pre-insert existence check.
type tokenFactory struct {
	tokenRepo    TokenRepository
	tokenService service.TokenService
}

// tokenSpec describes the token to mint. The factory fills ID, Value, Status
// and timestamps.
type tokenSpec struct {
	Kind          oauthDomain.TokenKind
	ParentTokenID *uuid.UUID
	ClientID      uuid.UUID
	UserID        *uuid.UUID
	Scopes        []string
	TTL           time.Duration
}

// mint creates a token per spec and persists it, regenerating the value on
// conflict up to maxGenerationAttempts times.
func (f *tokenFactory) mint(ctx context.Context, spec tokenSpec) (*oauthDomain.Token, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		value, err := f.tokenService.GenerateValue()
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		token := &oauthDomain.Token{
			ID:            uuid.Must(uuid.NewV7()),
			Kind:          spec.Kind,
			Value:         value,
			ParentTokenID: spec.ParentTokenID,
			ClientID:      spec.ClientID,
			UserID:        spec.UserID,
			Scopes:        spec.Scopes,
			Status:        oauthDomain.StatusActive,
			ExpiresAt:     now.Add(spec.TTL),
			CreatedAt:     now,
		}

		if err := token.Validate(); err != nil {
			return nil, err
		}

		err = f.tokenRepo.Create(ctx, token)
		if err == nil {
			return token, nil
		}
		if apperrors.Is(err, oauthDomain.ErrTokenValueExists) {
			continue
		}
		return nil, err
	}

	return nil, apperrors.Wrap(apperrors.ErrInfrastructure, "exhausted token value generation attempts")
}

func newTokenFactory(tokenRepo TokenRepository, tokenService service.TokenService) *tokenFactory {
	return &tokenFactory{
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
	}
}
