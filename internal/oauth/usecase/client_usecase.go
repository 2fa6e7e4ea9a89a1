package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	apperrors "github.com/allisson/oauth/internal/errors"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	"github.com/allisson/oauth/internal/oauth/service"
	appValidation "github.com/allisson/oauth/internal/validation"
)

// ClientProvisioner handles client and scope provisioning.
type ClientProvisioner struct {
	clientRepo    ClientRepository
	scopeRepo     ScopeRepository
	secretService service.SecretService
	tokenService  service.TokenService
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(
	clientRepo ClientRepository,
	scopeRepo ScopeRepository,
	secretService service.SecretService,
	tokenService service.TokenService,
) ClientUseCase {
	return &ClientProvisioner{
		clientRepo:    clientRepo,
		scopeRepo:     scopeRepo,
		secretService: secretService,
		tokenService:  tokenService,
	}
}

func (c *ClientProvisioner) validateCreateClientInput(input oauthDomain.CreateClientInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.RedirectURI,
			validation.Required.Error("redirect uri is required"),
			appValidation.AbsoluteURL,
			validation.Length(1, 2048).Error("redirect uri must be at most 2048 characters"),
		),
		validation.Field(&input.Scopes,
			validation.Required.Error("at least one scope is required"),
			validation.Each(appValidation.ScopeIdentifier),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateClient provisions a client. Every permitted scope must already be
// registered. The public client ID is drawn randomly and regenerated on
// conflict, like token values.
func (c *ClientProvisioner) CreateClient(
	ctx context.Context,
	input oauthDomain.CreateClientInput,
) (*oauthDomain.CreateClientOutput, error) {
	if err := c.validateCreateClientInput(input); err != nil {
		return nil, err
	}

	for _, identifier := range input.Scopes {
		if _, err := c.scopeRepo.GetByIdentifier(ctx, identifier); err != nil {
			return nil, err
		}
	}

	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		clientID, err := c.tokenService.GenerateClientID()
		if err != nil {
			return nil, err
		}

		client := &oauthDomain.Client{
			ID:          uuid.Must(uuid.NewV7()),
			ClientID:    clientID,
			Secret:      hashedSecret,
			Name:        strings.TrimSpace(input.Name),
			RedirectURI: input.RedirectURI,
			Scopes:      input.Scopes,
			IsActive:    input.IsActive,
			CreatedAt:   time.Now().UTC(),
		}

		err = c.clientRepo.Create(ctx, client)
		if err == nil {
			return &oauthDomain.CreateClientOutput{
				ID:          client.ID,
				ClientID:    client.ClientID,
				PlainSecret: plainSecret,
			}, nil
		}
		if apperrors.Is(err, oauthDomain.ErrClientIDExists) {
			continue
		}
		return nil, err
	}

	return nil, apperrors.Wrap(apperrors.ErrInfrastructure, "exhausted client id generation attempts")
}

// GetClient retrieves a client by its public identifier.
func (c *ClientProvisioner) GetClient(ctx context.Context, clientID string) (*oauthDomain.Client, error) {
	return c.clientRepo.GetByClientID(ctx, clientID)
}

func (c *ClientProvisioner) validateCreateScopeInput(input oauthDomain.CreateScopeInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Identifier,
			validation.Required.Error("identifier is required"),
			appValidation.ScopeIdentifier,
			validation.Length(1, 255).Error("identifier must be between 1 and 255 characters"),
		),
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateScope registers a new scope.
func (c *ClientProvisioner) CreateScope(
	ctx context.Context,
	input oauthDomain.CreateScopeInput,
) (*oauthDomain.Scope, error) {
	if err := c.validateCreateScopeInput(input); err != nil {
		return nil, err
	}

	scope := &oauthDomain.Scope{
		ID:          uuid.Must(uuid.NewV7()),
		Identifier:  input.Identifier,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now().UTC(),
	}

	if err := c.scopeRepo.Create(ctx, scope); err != nil {
		return nil, err
	}

	return scope, nil
}

// ListScopes returns all registered scopes.
func (c *ClientProvisioner) ListScopes(ctx context.Context) ([]*oauthDomain.Scope, error) {
	return c.scopeRepo.List(ctx)
}
