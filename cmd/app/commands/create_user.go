package commands

import (
	"context"
	"fmt"
	"log/slog"

	userUsecase "github.com/allisson/oauth/internal/user/usecase"
)

// RunCreateUser provisions a resource owner for the password and
// authorization-code grants. The password is hashed before storage.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUsecase.UseCase,
	logger *slog.Logger,
	username string,
	password string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("username", username))

	user, err := userUseCase.CreateUser(ctx, userUsecase.CreateUserInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]string{
			"id":       user.ID.String(),
			"username": user.Username,
		}, io.Writer)
	} else {
		_, _ = fmt.Fprintln(io.Writer, "\nUser created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "ID: %s\n", user.ID.String())
		_, _ = fmt.Fprintf(io.Writer, "Username: %s\n", user.Username)
	}

	logger.Info("user created successfully",
		slog.String("id", user.ID.String()),
		slog.String("username", user.Username),
	)

	return nil
}
