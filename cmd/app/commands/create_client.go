package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
	oauthUseCase "github.com/allisson/oauth/internal/oauth/usecase"
)

// RunCreateClient creates a new OAuth client bound to registered scopes.
// Outputs the public client ID and plain secret in either text or JSON format.
// The secret is shown only once; only its hash is stored.
//
// Requirements: Database must be migrated and accessible, scopes registered.
func RunCreateClient(
	ctx context.Context,
	clientUseCase oauthUseCase.ClientUseCase,
	logger *slog.Logger,
	name string,
	redirectURI string,
	scopesCSV string,
	isActive bool,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new client", slog.String("name", name))

	scopes := parseScopeList(scopesCSV)
	if len(scopes) == 0 {
		return fmt.Errorf("at least one scope is required")
	}

	input := oauthDomain.CreateClientInput{
		Name:        name,
		RedirectURI: redirectURI,
		Scopes:      scopes,
		IsActive:    isActive,
	}

	output, err := clientUseCase.CreateClient(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]string{
			"client_id": output.ClientID,
			"secret":    output.PlainSecret,
		}, io.Writer)
	} else {
		outputClientText(output, io.Writer)
	}

	logger.Info("client created successfully",
		slog.String("client_id", output.ClientID),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// parseScopeList converts a comma-separated string into scope identifiers.
func parseScopeList(input string) []string {
	parts := strings.Split(input, ",")
	scopes := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			scopes = append(scopes, trimmed)
		}
	}

	return scopes
}

// outputClientText outputs the result in human-readable text format.
func outputClientText(output *oauthDomain.CreateClientOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nClient created successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", output.ClientID)
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
}
