package main

import (
	"context"
	"fmt"

	"github.com/malicorX/moltworld/cmd/moltworld/server"
	"github.com/malicorX/moltworld/internal/config"
	"github.com/malicorX/moltworld/internal/logging/writers"
	"github.com/urfave/cli/v3"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve the MoltWorld tools over MCP (stdio by default)",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "transport",
			Aliases: []string{"t"},
			Usage:   "MCP transport (stdio or http)",
		},
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "Listen address for the http transport",
		},
	},
	Action: serveAction,
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if v := cmd.String("transport"); v != "" {
		settings.Server.Transport = config.Transport(v)
	}
	if v := cmd.String("listen"); v != "" {
		settings.Server.Listen = v
	}
	if err := settings.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if settings.Server.Transport == config.TransportStdio &&
		writers.ParseWriterType(settings.Logging.Output) == writers.WriterTypeStdout {
		return cli.Exit("logging to stdout would corrupt the stdio transport", 1)
	}

	logger, err := setupLogger(settings)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Debug("Loaded settings", "settings", settings.String())

	if err := server.Run(ctx, logger, settings, cmd.Root().Version); err != nil {
		return cli.Exit(fmt.Sprintf("server failed: %v", err), 1)
	}
	return nil
}
