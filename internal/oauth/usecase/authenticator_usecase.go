package usecase

import (
	"context"
	"slices"
	"time"

	apperrors "github.com/allisson/oauth/internal/errors"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	"github.com/allisson/oauth/internal/oauth/service"
)

// Authenticator implements AuthenticatorUseCase. Validation is two-phase:
// first the self-contained JWT checks (signature, validity window, scopes),
// then a store round trip that catches revocation, which no signature check
// can see.
type Authenticator struct {
	jwtService service.JWTService
	tokenRepo  TokenRepository
	users      UserVerifier
}

// NewAuthenticatorUseCase creates a new AuthenticatorUseCase.
func NewAuthenticatorUseCase(
	jwtService service.JWTService,
	tokenRepo TokenRepository,
	users UserVerifier,
) AuthenticatorUseCase {
	return &Authenticator{
		jwtService: jwtService,
		tokenRepo:  tokenRepo,
		users:      users,
	}
}

// Authenticate verifies a bearer JWT and enforces the required scopes.
func (a *Authenticator) Authenticate(
	ctx context.Context,
	credential string,
	requiredScopes []string,
) (*oauthDomain.Authentication, error) {
	claims, err := a.jwtService.Decode(credential)
	if err != nil {
		return nil, err
	}

	if err := checkScopes(claims.Scopes, requiredScopes); err != nil {
		return nil, err
	}

	// The jti claim is the stored token value; resolve it to catch tokens
	// revoked after issuance.
	token, err := a.tokenRepo.GetByValue(ctx, oauthDomain.KindAccessToken, claims.TokenValue)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, oauthDomain.ErrTokenRevoked
		}
		return nil, err
	}
	if !token.Usable(time.Now().UTC()) {
		return nil, oauthDomain.ErrTokenRevoked
	}

	auth := &oauthDomain.Authentication{Token: token}

	if token.UserID != nil {
		user, err := a.users.GetUserByID(ctx, *token.UserID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, oauthDomain.ErrTokenRevoked
			}
			return nil, err
		}
		auth.Username = user.Username
	}

	return auth, nil
}

// checkScopes enforces the scope requirement. The root super-scope satisfies
// any requirement; otherwise every required identifier must be present.
func checkScopes(granted []string, required []string) error {
	if len(required) == 0 {
		return nil
	}
	if slices.Contains(granted, oauthDomain.RootScope) {
		return nil
	}

	var missing []string
	for _, identifier := range required {
		if !slices.Contains(granted, identifier) {
			missing = append(missing, identifier)
		}
	}
	if len(missing) > 0 {
		return &oauthDomain.MissingScopesError{Scopes: missing}
	}

	return nil
}
