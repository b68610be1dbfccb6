// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/adamdarley-hub/RealSMPortal-sub003/cmd/app/commands"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "ServeManager portal sync and reconciliation service",
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
				Name:  "sync",
				Usage: "Run one full resync against ServeManager and exit",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSync(ctx)
				},
			},
			{
				Name:  "set-credentials",
				Usage: "Store ServeManager credentials in the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "base-url",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "ServeManager API base URL",
					},
					&cli.StringFlag{
						Name:     "api-key",
						Aliases:  []string{"k"},
						Required: true,
						Usage:    "ServeManager API key",
					},
					&cli.BoolFlag{
						Name:    "enabled",
						Aliases: []string{"e"},
						Value:   true,
						Usage:   "Whether the integration is enabled",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSetCredentials(
						ctx,
						cmd.String("base-url"),
						cmd.String("api-key"),
						cmd.Bool("enabled"),
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
