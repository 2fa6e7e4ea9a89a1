package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	oauthUseCase "github.com/allisson/oauth/internal/oauth/usecase"
)

// RunCleanExpiredTokens hard-deletes tokens that have been expired for longer
// than the retention window. Issuance and validation never delete rows, so
// this is the only path that reclaims storage.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(
	ctx context.Context,
	tokenUseCase oauthUseCase.TokenUseCase,
	logger *slog.Logger,
	days int,
	format string,
	io IOTuple,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning expired tokens", slog.Int("days", days))

	retention := time.Duration(days) * 24 * time.Hour

	count, err := tokenUseCase.DeleteExpired(ctx, retention)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]any{
			"count": count,
			"days":  days,
		}, io.Writer)
	} else {
		outputCleanExpiredText(count, days, io.Writer)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
	)

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(count int64, days int, writer io.Writer) {
	_, _ = fmt.Fprintf(writer,
		"Successfully deleted %d expired token(s) older than %d day(s)\n", count, days)
}
