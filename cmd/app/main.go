// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/songifi/lyricsflip-server-sub002/cmd/app/commands"
	"github.com/songifi/lyricsflip-server-sub002/internal/app"
	"github.com/songifi/lyricsflip-server-sub002/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "LyricsFlip event propagation server",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server and the outbox publisher",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					logger := app.NewContainer(cfg).Logger()
					return commands.RunMigrations(logger, cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "process-outbox",
				Usage: "Drain one batch of pending outbox entries and exit",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunProcessOutbox(ctx)
				},
			},
			{
				Name:  "requeue-failed",
				Usage: "Move dead-letter outbox entries back to pending",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunRequeueFailed(ctx)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
