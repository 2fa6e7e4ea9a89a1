package commands

import (
	"context"
	"fmt"

	"github.com/allisson/oauth/internal/app"
	"github.com/allisson/oauth/internal/config"
)

// RunCreateClientCommand wires the container and runs the create-client command.
func RunCreateClientCommand(
	ctx context.Context,
	name, redirectURI, scopesCSV string,
	isActive bool,
	format string,
) error {
	container := app.NewContainer(config.Load())
	logger := container.Logger()
	defer closeContainer(container, logger)

	clientUseCase, err := container.ClientUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize client use case: %w", err)
	}

	return RunCreateClient(ctx, clientUseCase, logger,
		name, redirectURI, scopesCSV, isActive, format, DefaultIO())
}

// RunCreateScopeCommand wires the container and runs the create-scope command.
func RunCreateScopeCommand(ctx context.Context, identifier, name, description, format string) error {
	container := app.NewContainer(config.Load())
	logger := container.Logger()
	defer closeContainer(container, logger)

	clientUseCase, err := container.ClientUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize client use case: %w", err)
	}

	return RunCreateScope(ctx, clientUseCase, logger,
		identifier, name, description, format, DefaultIO())
}

// RunCreateUserCommand wires the container and runs the create-user command.
func RunCreateUserCommand(ctx context.Context, username, password, format string) error {
	container := app.NewContainer(config.Load())
	logger := container.Logger()
	defer closeContainer(container, logger)

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	return RunCreateUser(ctx, userUseCase, logger, username, password, format, DefaultIO())
}

// RunCleanExpiredTokensCommand wires the container and runs the cleanup command.
func RunCleanExpiredTokensCommand(ctx context.Context, days int, format string) error {
	container := app.NewContainer(config.Load())
	logger := container.Logger()
	defer closeContainer(container, logger)

	tokenUseCase, err := container.TokenUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize token use case: %w", err)
	}

	return RunCleanExpiredTokens(ctx, tokenUseCase, logger, days, format, DefaultIO())
}

// RunGenerateKeypairCommand wires the logger and runs the generate-keypair command.
func RunGenerateKeypairCommand(bits int, privatePath, publicPath string) error {
	container := app.NewContainer(config.Load())
	logger := container.Logger()

	return RunGenerateKeypair(logger, bits, privatePath, publicPath)
}
