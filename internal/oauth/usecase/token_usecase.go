package usecase

import (
	"context"
	"time"

	"github.com/allisson/oauth/internal/database"
	apperrors "github.com/allisson/oauth/internal/errors"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
)

// TokenLifecycle implements TokenUseCase: lookup, revocation with cascade,
// and expired-token housekeeping.
type TokenLifecycle struct {
	txManager database.TxManager
	tokenRepo TokenRepository
}

// NewTokenUseCase creates a new TokenUseCase.
func NewTokenUseCase(txManager database.TxManager, tokenRepo TokenRepository) TokenUseCase {
	return &TokenLifecycle{
		txManager: txManager,
		tokenRepo: tokenRepo,
	}
}

// FindByValue retrieves a token by kind and opaque value.
func (t *TokenLifecycle) FindByValue(
	ctx context.Context,
	kind oauthDomain.TokenKind,
	value string,
) (*oauthDomain.Token, error) {
	return t.tokenRepo.GetByValue(ctx, kind, value)
}

// Revoke revokes the token with the given value along with its lineage. The
// value is looked up across kinds since revocation requests do not say which
// credential they carry. Unknown values succeed: revocation is idempotent and
// must not leak whether a token exists.
func (t *TokenLifecycle) Revoke(ctx context.Context, value string) error {
	token, err := t.findAnyKind(ctx, value)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	return t.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := t.tokenRepo.Revoke(ctx, token.ID); err != nil {
			return err
		}

		// Children die with the parent: revoking an access token kills the
		// refresh tokens issued alongside it.
		if err := t.tokenRepo.RevokeByParentID(ctx, token.ID); err != nil {
			return err
		}

		// Revoking a refresh token also kills its paired access token.
		if token.ParentTokenID != nil {
			if err := t.tokenRepo.Revoke(ctx, *token.ParentTokenID); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteExpired hard-deletes tokens expired for longer than the retention
// window. This is operational housekeeping; the protocol paths never delete.
func (t *TokenLifecycle) DeleteExpired(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return t.tokenRepo.DeleteExpired(ctx, cutoff)
}

// findAnyKind resolves a value trying refresh tokens first (the usual
// revocation target), then access tokens, then authorization codes.
func (t *TokenLifecycle) findAnyKind(ctx context.Context, value string) (*oauthDomain.Token, error) {
	kinds := []oauthDomain.TokenKind{
		oauthDomain.KindRefreshToken,
		oauthDomain.KindAccessToken,
		oauthDomain.KindAuthorizationCode,
	}

	for _, kind := range kinds {
		token, err := t.tokenRepo.GetByValue(ctx, kind, value)
		if err == nil {
			return token, nil
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	return nil, oauthDomain.ErrTokenNotFound
}
