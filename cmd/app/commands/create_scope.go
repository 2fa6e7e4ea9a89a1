package commands

import (
	"context"
	"fmt"
	"log/slog"

	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	oauthUseCase "github.com/allisson/oauth/internal/oauth/usecase"
)

// RunCreateScope registers a new scope identifier clients can be bound to.
//
// Requirements: Database must be migrated and accessible.
func RunCreateScope(
	ctx context.Context,
	clientUseCase oauthUseCase.ClientUseCase,
	logger *slog.Logger,
	identifier string,
	name string,
	description string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new scope", slog.String("identifier", identifier))

	scope, err := clientUseCase.CreateScope(ctx, oauthDomain.CreateScopeInput{
		Identifier:  identifier,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to create scope: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]string{
			"id":         scope.ID.String(),
			"identifier": scope.Identifier,
		}, io.Writer)
	} else {
		_, _ = fmt.Fprintln(io.Writer, "\nScope created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "ID: %s\n", scope.ID.String())
		_, _ = fmt.Fprintf(io.Writer, "Identifier: %s\n", scope.Identifier)
	}

	logger.Info("scope created successfully",
		slog.String("id", scope.ID.String()),
		slog.String("identifier", scope.Identifier),
	)

	return nil
}
