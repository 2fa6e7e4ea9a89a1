package app

import (
	"fmt"
	"os"

	apperrors "github.com/allisson/oauth/internal/errors"
	oauthHTTP "github.com/allisson/oauth/internal/oauth/http"
	oauthRepository "github.com/allisson/oauth/internal/oauth/repository"
	oauthService "github.com/allisson/oauth/internal/oauth/service"
	oauthUseCase "github.com/allisson/oauth/internal/oauth/usecase"
)

// SecretService returns the secret service for client credential hashing.
func (c *Container) SecretService() oauthService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = oauthService.NewSecretService()
	})
	return c.secretService
}

// TokenService returns the token service for opaque value generation.
func (c *Container) TokenService() oauthService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = oauthService.NewTokenService()
	})
	return c.tokenService
}

// JWTService returns the JWT service configured with the RSA key material.
// The private key is optional: when absent the service can only verify, which
// is enough for commands that never sign.
func (c *Container) JWTService() (oauthService.JWTService, error) {
	var err error
	c.jwtServiceInit.Do(func() {
		c.jwtService, err = c.initJWTService()
		if err != nil {
			c.initErrors["jwtService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["jwtService"]; exists {
		return nil, storedErr
	}
	return c.jwtService, nil
}

// TokenRepository returns the token repository based on database driver.
func (c *Container) TokenRepository() (oauthUseCase.TokenRepository, error) {
	var err error
	c.tokenRepositoryInit.Do(func() {
		c.tokenRepository, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenRepository"]; exists {
		return nil, storedErr
	}
	return c.tokenRepository, nil
}

// ClientRepository returns the client repository based on database driver.
func (c *Container) ClientRepository() (oauthUseCase.ClientRepository, error) {
	var err error
	c.clientRepositoryInit.Do(func() {
		c.clientRepository, err = c.initClientRepository()
		if err != nil {
			c.initErrors["clientRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientRepository"]; exists {
		return nil, storedErr
	}
	return c.clientRepository, nil
}

// ScopeRepository returns the scope repository based on database driver.
func (c *Container) ScopeRepository() (oauthUseCase.ScopeRepository, error) {
	var err error
	c.scopeRepositoryInit.Do(func() {
		c.scopeRepository, err = c.initScopeRepository()
		if err != nil {
			c.initErrors["scopeRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["scopeRepository"]; exists {
		return nil, storedErr
	}
	return c.scopeRepository, nil
}

// ClientUseCase returns the client and scope provisioning use case.
func (c *Container) ClientUseCase() (oauthUseCase.ClientUseCase, error) {
	var err error
	c.clientUseCaseInit.Do(func() {
		c.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.clientUseCase, nil
}

// GrantUseCase returns the grant use case.
func (c *Container) GrantUseCase() (oauthUseCase.GrantUseCase, error) {
	var err error
	c.grantUseCaseInit.Do(func() {
		c.grantUseCase, err = c.initGrantUseCase()
		if err != nil {
			c.initErrors["grantUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantUseCase"]; exists {
		return nil, storedErr
	}
	return c.grantUseCase, nil
}

// TokenUseCase returns the token lifecycle use case.
func (c *Container) TokenUseCase() (oauthUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// AuthenticatorUseCase returns the bearer credential validator.
func (c *Container) AuthenticatorUseCase() (oauthUseCase.AuthenticatorUseCase, error) {
	var err error
	c.authenticatorUseCaseInit.Do(func() {
		c.authenticatorUseCase, err = c.initAuthenticatorUseCase()
		if err != nil {
			c.initErrors["authenticatorUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authenticatorUseCase"]; exists {
		return nil, storedErr
	}
	return c.authenticatorUseCase, nil
}

// TokenHandler returns the HTTP handler for the protocol endpoints.
func (c *Container) TokenHandler() (*oauthHTTP.TokenHandler, error) {
	grantUseCase, err := c.GrantUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant use case for token handler: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	return oauthHTTP.NewTokenHandler(grantUseCase, tokenUseCase, c.Logger()), nil
}

// initJWTService loads the RSA key material and builds the JWT service.
func (c *Container) initJWTService() (oauthService.JWTService, error) {
	publicKey, err := oauthService.LoadRSAPublicKey(c.config.JWTPublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load jwt public key: %w", err)
	}

	privateKey, err := oauthService.LoadRSAPrivateKey(c.config.JWTPrivateKeyPath)
	if err != nil {
		if !apperrors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load jwt private key: %w", err)
		}
		c.Logger().Warn("jwt private key not found, token signing disabled")
		privateKey = nil
	}

	return oauthService.NewJWTService(privateKey, publicKey, c.config.JWTDefaultAudience), nil
}

// initTokenRepository creates the token repository instance.
func (c *Container) initTokenRepository() (oauthUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return oauthRepository.NewMySQLTokenRepository(db), nil
	case "postgres":
		return oauthRepository.NewPostgreSQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initClientRepository creates the client repository instance.
func (c *Container) initClientRepository() (oauthUseCase.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return oauthRepository.NewMySQLClientRepository(db), nil
	case "postgres":
		return oauthRepository.NewPostgreSQLClientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initScopeRepository creates the scope repository instance.
func (c *Container) initScopeRepository() (oauthUseCase.ScopeRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for scope repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return oauthRepository.NewMySQLScopeRepository(db), nil
	case "postgres":
		return oauthRepository.NewPostgreSQLScopeRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initClientUseCase creates the client provisioning use case.
func (c *Container) initClientUseCase() (oauthUseCase.ClientUseCase, error) {
	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	scopeRepo, err := c.ScopeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get scope repository for client use case: %w", err)
	}

	return oauthUseCase.NewClientUseCase(
		clientRepo,
		scopeRepo,
		c.SecretService(),
		c.TokenService(),
	), nil
}

// initGrantUseCase creates the grant use case with metrics decoration.
func (c *Container) initGrantUseCase() (oauthUseCase.GrantUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for grant use case: %w", err)
	}

	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for grant use case: %w", err)
	}

	scopeRepo, err := c.ScopeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get scope repository for grant use case: %w", err)
	}

	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for grant use case: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for grant use case: %w", err)
	}

	jwtService, err := c.JWTService()
	if err != nil {
		return nil, fmt.Errorf("failed to get jwt service for grant use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for grant use case: %w", err)
	}

	grantUseCase := oauthUseCase.NewGrantUseCase(
		txManager,
		clientRepo,
		scopeRepo,
		tokenRepo,
		userUseCase,
		c.SecretService(),
		c.TokenService(),
		jwtService,
		oauthUseCase.GrantConfig{
			AccessTokenTTL:       c.config.AccessTokenExpiration,
			RefreshTokenTTL:      c.config.RefreshTokenExpiration,
			AuthorizationCodeTTL: c.config.AuthorizationCodeExpiration,
		},
	)

	return oauthUseCase.NewGrantUseCaseWithMetrics(grantUseCase, businessMetrics), nil
}

// initTokenUseCase creates the token lifecycle use case with metrics decoration.
func (c *Container) initTokenUseCase() (oauthUseCase.TokenUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for token use case: %w", err)
	}

	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}

	tokenUseCase := oauthUseCase.NewTokenUseCase(txManager, tokenRepo)

	return oauthUseCase.NewTokenUseCaseWithMetrics(tokenUseCase, businessMetrics), nil
}

// initAuthenticatorUseCase creates the bearer credential validator with metrics decoration.
func (c *Container) initAuthenticatorUseCase() (oauthUseCase.AuthenticatorUseCase, error) {
	jwtService, err := c.JWTService()
	if err != nil {
		return nil, fmt.Errorf("failed to get jwt service for authenticator: %w", err)
	}

	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for authenticator: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for authenticator: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for authenticator: %w", err)
	}

	authenticator := oauthUseCase.NewAuthenticatorUseCase(jwtService, tokenRepo, userUseCase)

	return oauthUseCase.NewAuthenticatorUseCaseWithMetrics(authenticator, businessMetrics), nil
}
