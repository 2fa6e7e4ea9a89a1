package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/oauth/internal/database"
	apperrors "github.com/allisson/oauth/internal/errors"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	"github.com/allisson/oauth/internal/oauth/service"
)

// GrantConfig carries the token lifetimes used by the grant flows.
type GrantConfig struct {
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	AuthorizationCodeTTL time.Duration
}

// Granter implements GrantUseCase: the authorization-code front channel plus
// the four back-channel token grants.
type Granter struct {
	txManager     database.TxManager
	clientRepo    ClientRepository
	scopeRepo     ScopeRepository
	tokenRepo     TokenRepository
	users         UserVerifier
	secretService service.SecretService
	jwtService    service.JWTService
	factory       *tokenFactory
	cfg           GrantConfig
}

// NewGrantUseCase creates a new GrantUseCase.
func NewGrantUseCase(
	txManager database.TxManager,
	clientRepo ClientRepository,
	scopeRepo ScopeRepository,
	tokenRepo TokenRepository,
	users UserVerifier,
	secretService service.SecretService,
	tokenService service.TokenService,
	jwtService service.JWTService,
	cfg GrantConfig,
) GrantUseCase {
	return &Granter{
		txManager:     txManager,
		clientRepo:    clientRepo,
		scopeRepo:     scopeRepo,
		tokenRepo:     tokenRepo,
		users:         users,
		secretService: secretService,
		jwtService:    jwtService,
		factory:       newTokenFactory(tokenRepo, tokenService),
		cfg:           cfg,
	}
}

// lookupActiveClient resolves a client by public ID for front-channel requests
// where no secret is presented. Unknown and inactive clients both map to
// ErrInvalidClient; infrastructure failures pass through untouched.
func (g *Granter) lookupActiveClient(ctx context.Context, clientID string) (*oauthDomain.Client, error) {
	client, err := g.clientRepo.GetByClientID(ctx, clientID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, oauthDomain.ErrInvalidClient
		}
		return nil, err
	}
	if !client.IsActive {
		return nil, oauthDomain.ErrInvalidClient
	}
	return client, nil
}

// authenticateClient resolves a client and verifies its secret. All
// authentication failures collapse into ErrInvalidClient.
func (g *Granter) authenticateClient(
	ctx context.Context,
	clientID string,
	clientSecret string,
) (*oauthDomain.Client, error) {
	client, err := g.lookupActiveClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !g.secretService.CompareSecret(clientSecret, client.Secret) {
		return nil, oauthDomain.ErrInvalidClient
	}
	return client, nil
}

// resolveScopes turns the requested scope list into the granted one. An empty
// request grants the client's full permitted set. Unknown and unpermitted
// scopes fail the request; they are never silently dropped.
func (g *Granter) resolveScopes(
	ctx context.Context,
	client *oauthDomain.Client,
	requested []string,
) ([]string, error) {
	if len(requested) == 0 {
		return slices.Clone(client.Scopes), nil
	}

	for _, identifier := range requested {
		_, err := g.scopeRepo.GetByIdentifier(ctx, identifier)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.Wrapf(oauthDomain.ErrInvalidScope, "unknown scope %q", identifier)
			}
			return nil, err
		}
	}

	if missing := client.MissingScopes(requested); len(missing) > 0 {
		return nil, apperrors.Wrapf(
			oauthDomain.ErrInvalidScope,
			"scopes not permitted for client: %s", strings.Join(missing, ", "),
		)
	}

	return slices.Clone(requested), nil
}

// Authorize validates the front-channel request and mints a single-use
// authorization code bound to the user, client, and granted scopes.
func (g *Granter) Authorize(
	ctx context.Context,
	input oauthDomain.AuthorizeInput,
) (*oauthDomain.AuthorizeOutput, error) {
	client, err := g.lookupActiveClient(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if input.RedirectURI != client.RedirectURI {
		return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "redirect uri mismatch")
	}

	user, err := g.users.VerifyCredentials(ctx, input.Username, input.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "invalid resource owner credentials")
		}
		return nil, err
	}

	scopes, err := g.resolveScopes(ctx, client, input.Scopes)
	if err != nil {
		return nil, err
	}

	code, err := g.factory.mint(ctx, tokenSpec{
		Kind:     oauthDomain.KindAuthorizationCode,
		ClientID: client.ID,
		UserID:   &user.ID,
		Scopes:   scopes,
		TTL:      g.cfg.AuthorizationCodeTTL,
	})
	if err != nil {
		return nil, err
	}

	return &oauthDomain.AuthorizeOutput{
		Code:      code.Value,
		ExpiresAt: code.ExpiresAt,
	}, nil
}

// Token dispatches a token request to the flow selected by grant type.
func (g *Granter) Token(
	ctx context.Context,
	input oauthDomain.TokenInput,
) (*oauthDomain.TokenOutput, error) {
	client, err := g.authenticateClient(ctx, input.ClientID, input.ClientSecret)
	if err != nil {
		return nil, err
	}

	switch input.GrantType {
	case oauthDomain.GrantTypeClientCredentials:
		return g.clientCredentialsGrant(ctx, client, input)
	case oauthDomain.GrantTypePassword:
		return g.passwordGrant(ctx, client, input)
	case oauthDomain.GrantTypeAuthorizationCode:
		return g.authorizationCodeGrant(ctx, client, input)
	case oauthDomain.GrantTypeRefreshToken:
		return g.refreshTokenGrant(ctx, client, input)
	default:
		return nil, apperrors.Wrapf(oauthDomain.ErrUnsupportedGrantType, "grant type %q", input.GrantType)
	}
}

func (g *Granter) clientCredentialsGrant(
	ctx context.Context,
	client *oauthDomain.Client,
	input oauthDomain.TokenInput,
) (*oauthDomain.TokenOutput, error) {
	scopes, err := g.resolveScopes(ctx, client, input.Scopes)
	if err != nil {
		return nil, err
	}

	// Machine-to-machine tokens carry no refresh credential; the client can
	// always request a fresh one with its own credentials.
	access, err := g.factory.mint(ctx, tokenSpec{
		Kind:     oauthDomain.KindAccessToken,
		ClientID: client.ID,
		Scopes:   scopes,
		TTL:      g.cfg.AccessTokenTTL,
	})
	if err != nil {
		return nil, err
	}

	return g.buildTokenOutput(ctx, client, access, nil)
}

func (g *Granter) passwordGrant(
	ctx context.Context,
	client *oauthDomain.Client,
	input oauthDomain.TokenInput,
) (*oauthDomain.TokenOutput, error) {
	user, err := g.users.VerifyCredentials(ctx, input.Username, input.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "invalid resource owner credentials")
		}
		return nil, err
	}

	scopes, err := g.resolveScopes(ctx, client, input.Scopes)
	if err != nil {
		return nil, err
	}

	return g.issuePair(ctx, client, &user.ID, scopes)
}

func (g *Granter) authorizationCodeGrant(
	ctx context.Context,
	client *oauthDomain.Client,
	input oauthDomain.TokenInput,
) (*oauthDomain.TokenOutput, error) {
	code, err := g.tokenRepo.GetByValue(ctx, oauthDomain.KindAuthorizationCode, input.Code)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "unknown authorization code")
		}
		return nil, err
	}

	if code.ClientID != client.ID {
		return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "authorization code owned by another client")
	}
	if !code.Usable(time.Now().UTC()) {
		return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "authorization code expired or revoked")
	}
	if input.RedirectURI != client.RedirectURI {
		return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "redirect uri mismatch")
	}

	// The granted scopes were fixed when the code was minted; the exchange
	// consumes the code and transfers them unchanged. The consume is
	// conditional: the pre-transaction snapshot may be stale, and only the
	// request that actually transitions the code gets to mint tokens.
	var output *oauthDomain.TokenOutput
	err = g.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := g.tokenRepo.Consume(ctx, code.ID); err != nil {
			if apperrors.Is(err, oauthDomain.ErrTokenNotActive) {
				return apperrors.Wrap(oauthDomain.ErrInvalidGrant, "authorization code already used")
			}
			return err
		}
		output, err = g.issuePair(ctx, client, code.UserID, code.Scopes)
		return err
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (g *Granter) refreshTokenGrant(
	ctx context.Context,
	client *oauthDomain.Client,
	input oauthDomain.TokenInput,
) (*oauthDomain.TokenOutput, error) {
	refresh, err := g.tokenRepo.GetByValue(ctx, oauthDomain.KindRefreshToken, input.RefreshToken)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "unknown refresh token")
		}
		return nil, err
	}

	if refresh.ClientID != client.ID {
		return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "refresh token owned by another client")
	}
	if !refresh.Usable(time.Now().UTC()) {
		return nil, apperrors.Wrap(oauthDomain.ErrInvalidGrant, "refresh token expired or revoked")
	}

	// Scope narrowing: a rotation may keep or shrink the granted set, never
	// grow it.
	scopes := slices.Clone(refresh.Scopes)
	if len(input.Scopes) > 0 {
		for _, identifier := range input.Scopes {
			if !slices.Contains(refresh.Scopes, identifier) {
				return nil, apperrors.Wrapf(
					oauthDomain.ErrInvalidScope,
					"scope %q exceeds the original grant", identifier,
				)
			}
		}
		scopes = slices.Clone(input.Scopes)
	}

	// Rotation: the presented refresh token and the access token it was
	// issued with both die with the exchange. The consume is conditional so a
	// rotation racing a revoke on the same lineage fails instead of minting an
	// active pair from a revoked parent.
	var output *oauthDomain.TokenOutput
	err = g.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := g.tokenRepo.Consume(ctx, refresh.ID); err != nil {
			if apperrors.Is(err, oauthDomain.ErrTokenNotActive) {
				return apperrors.Wrap(oauthDomain.ErrInvalidGrant, "refresh token already rotated or revoked")
			}
			return err
		}
		if refresh.ParentTokenID != nil {
			if err := g.tokenRepo.Revoke(ctx, *refresh.ParentTokenID); err != nil {
				return err
			}
		}
		output, err = g.issuePair(ctx, client, refresh.UserID, scopes)
		return err
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// issuePair mints an access token plus its child refresh token atomically and
// builds the response. Safe to call inside an enclosing transaction; the
// context-stored tx is reused.
func (g *Granter) issuePair(
	ctx context.Context,
	client *oauthDomain.Client,
	userID *uuid.UUID,
	scopes []string,
) (*oauthDomain.TokenOutput, error) {
	var access, refresh *oauthDomain.Token

	err := g.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		access, err = g.factory.mint(ctx, tokenSpec{
			Kind:     oauthDomain.KindAccessToken,
			ClientID: client.ID,
			UserID:   userID,
			Scopes:   scopes,
			TTL:      g.cfg.AccessTokenTTL,
		})
		if err != nil {
			return err
		}

		refresh, err = g.factory.mint(ctx, tokenSpec{
			Kind:          oauthDomain.KindRefreshToken,
			ParentTokenID: &access.ID,
			ClientID:      client.ID,
			UserID:        userID,
			Scopes:        scopes,
			TTL:           g.cfg.RefreshTokenTTL,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return g.buildTokenOutput(ctx, client, access, refresh)
}

// buildTokenOutput signs the access token as a JWT and assembles the RFC 6749
// response values. The aud claim is the client's public ID and the sub claim
// is the bound username, empty for client-credentials tokens.
func (g *Granter) buildTokenOutput(
	ctx context.Context,
	client *oauthDomain.Client,
	access *oauthDomain.Token,
	refresh *oauthDomain.Token,
) (*oauthDomain.TokenOutput, error) {
	var subject string
	if access.UserID != nil {
		user, err := g.users.GetUserByID(ctx, *access.UserID)
		if err != nil {
			return nil, err
		}
		subject = user.Username
	}

	signed, err := g.jwtService.Encode(access, client.ClientID, subject)
	if err != nil {
		return nil, err
	}

	output := &oauthDomain.TokenOutput{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(g.cfg.AccessTokenTTL.Seconds()),
		Scopes:      access.Scopes,
	}
	if refresh != nil {
		output.RefreshToken = refresh.Value
	}

	return output, nil
}
