package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	oauthService "github.com/allisson/oauth/internal/oauth/service"
)

// RunGenerateKeypair creates an RSA keypair for JWT signing and writes both
// halves as PEM files. The private key file is created with owner-only
// permissions.
func RunGenerateKeypair(logger *slog.Logger, bits int, privatePath, publicPath string) error {
	if bits < 2048 {
		return fmt.Errorf("key size must be at least 2048 bits, got: %d", bits)
	}

	logger.Info("generating rsa keypair",
		slog.Int("bits", bits),
		slog.String("private_path", privatePath),
		slog.String("public_path", publicPath),
	)

	privatePEM, publicPEM, err := oauthService.GenerateRSAKeyPair(bits)
	if err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}

	for _, path := range []string{privatePath, publicPath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create key directory: %w", err)
			}
		}
	}

	if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	if err := os.WriteFile(publicPath, publicPEM, 0o644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	logger.Info("keypair generated successfully")
	return nil
}
