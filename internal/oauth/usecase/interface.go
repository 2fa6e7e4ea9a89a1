// Package usecase implements the OAuth business logic: client and scope
// provisioning, the four grant flows, token lifecycle, and bearer
// authentication.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	userDomain "github.com/allisson/oauth/internal/user/domain"
)

// TokenRepository interface defines token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *oauthDomain.Token) error
	Get(ctx context.Context, id uuid.UUID) (*oauthDomain.Token, error)
	GetByValue(ctx context.Context, kind oauthDomain.TokenKind, value string) (*oauthDomain.Token, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	Consume(ctx context.Context, id uuid.UUID) error
	RevokeByParentID(ctx context.Context, parentID uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// ClientRepository interface defines client persistence operations.
type ClientRepository interface {
	Create(ctx context.Context, client *oauthDomain.Client) error
	Get(ctx context.Context, id uuid.UUID) (*oauthDomain.Client, error)
	GetByClientID(ctx context.Context, clientID string) (*oauthDomain.Client, error)
}

// ScopeRepository interface defines scope persistence operations.
type ScopeRepository interface {
	Create(ctx context.Context, scope *oauthDomain.Scope) error
	GetByIdentifier(ctx context.Context, identifier string) (*oauthDomain.Scope, error)
	List(ctx context.Context) ([]*oauthDomain.Scope, error)
}

// UserVerifier is the slice of the user module the grant flows need: resolving
// resource-owner credentials and looking up token-bound users.
type UserVerifier interface {
	VerifyCredentials(ctx context.Context, username string, password string) (*userDomain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// ClientUseCase defines provisioning operations for clients and scopes.
type ClientUseCase interface {
	// CreateClient provisions a client, generating its public ID and secret.
	// The plain secret appears only in the output.
	CreateClient(ctx context.Context, input oauthDomain.CreateClientInput) (*oauthDomain.CreateClientOutput, error)

	// GetClient retrieves a client by its public identifier.
	GetClient(ctx context.Context, clientID string) (*oauthDomain.Client, error)

	// CreateScope registers a new scope identifier.
	CreateScope(ctx context.Context, input oauthDomain.CreateScopeInput) (*oauthDomain.Scope, error)

	// ListScopes returns all registered scopes.
	ListScopes(ctx context.Context) ([]*oauthDomain.Scope, error)
}

// GrantUseCase defines the protocol flows that issue credentials.
type GrantUseCase interface {
	// Authorize runs the front-channel half of the authorization-code flow and
	// mints a single-use code.
	Authorize(ctx context.Context, input oauthDomain.AuthorizeInput) (*oauthDomain.AuthorizeOutput, error)

	// Token runs the back-channel token request for any of the four grants.
	Token(ctx context.Context, input oauthDomain.TokenInput) (*oauthDomain.TokenOutput, error)
}

// TokenUseCase defines lifecycle operations on stored tokens.
type TokenUseCase interface {
	// FindByValue retrieves a token by kind and opaque value.
	FindByValue(ctx context.Context, kind oauthDomain.TokenKind, value string) (*oauthDomain.Token, error)

	// Revoke revokes the token with the given value along with its lineage:
	// children always, the parent when the target is a refresh token. Unknown
	// and already revoked values succeed.
	Revoke(ctx context.Context, value string) error

	// DeleteExpired hard-deletes tokens that have been expired for longer than
	// the retention window and returns the number of rows removed.
	DeleteExpired(ctx context.Context, retention time.Duration) (int64, error)
}

// AuthenticatorUseCase validates bearer credentials for protected operations.
type AuthenticatorUseCase interface {
	// Authenticate verifies a signed JWT, checks the required scopes against
	// its claims, and re-validates the backing token against the store.
	// Failures unwrap to ErrUnauthorized, except insufficient scopes which
	// yield a MissingScopesError (ErrForbidden).
	Authenticate(ctx context.Context, credential string, requiredScopes []string) (*oauthDomain.Authentication, error)
}
