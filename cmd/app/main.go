// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/oauth/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "OAuth2 token service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-client",
				Usage: "Create a new OAuth client bound to registered scopes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Human-readable client name",
					},
					&cli.StringFlag{
						Name:     "redirect-uri",
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "Redirect URI for the authorization-code flow",
					},
					&cli.StringFlag{
						Name:     "scopes",
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "Comma-separated scope identifiers the client may request",
					},
					&cli.BoolFlag{
						Name:    "active",
						Aliases: []string{"a"},
						Value:   true,
						Usage:   "Whether the client can request grants immediately",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateClientCommand(
						ctx,
						cmd.String("name"),
						cmd.String("redirect-uri"),
						cmd.String("scopes"),
						cmd.Bool("active"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "create-scope",
				Usage: "Register a new scope identifier",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "identifier",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Scope identifier (e.g., blog_write)",
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Human-readable scope name",
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "What the scope allows",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateScopeCommand(
						ctx,
						cmd.String("identifier"),
						cmd.String("name"),
						cmd.String("description"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "create-user",
				Usage: "Create a resource owner for the password and code grants",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Unique username",
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "Password (hashed before storage)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateUserCommand(
						ctx,
						cmd.String("username"),
						cmd.String("password"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "generate-keypair",
				Usage: "Generate an RSA keypair for JWT signing",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "bits",
						Aliases: []string{"b"},
						Value:   2048,
						Usage:   "RSA key size in bits",
					},
					&cli.StringFlag{
						Name:    "private-out",
						Value:   "keys/private.pem",
						Usage:   "Path for the PEM-encoded private key",
					},
					&cli.StringFlag{
						Name:    "public-out",
						Value:   "keys/public.pem",
						Usage:   "Path for the PEM-encoded public key",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateKeypairCommand(
						int(cmd.Int("bits")),
						cmd.String("private-out"),
						cmd.String("public-out"),
					)
				},
			},
			{
				Name:  "clean-expired-tokens",
				Usage: "Delete tokens expired for longer than the retention window",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "days",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Delete tokens expired for more than this many days",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCleanExpiredTokensCommand(
						ctx,
						int(cmd.Int("days")),
						cmd.String("format"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
