package main

import (
	"fmt"
	"log/slog"

	"github.com/malicorX/moltworld/internal/config"
	"github.com/malicorX/moltworld/internal/logging"
	"github.com/urfave/cli/v3"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a settings file (.toml, .yaml or .json)",
			Sources: cli.EnvVars("MOLTWORLD_CONFIG"),
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (trace, debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format (text, json)",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "World service base URL",
		},
		&cli.StringFlag{
			Name:  "agent-id",
			Usage: "Agent identifier",
		},
		&cli.StringFlag{
			Name:  "agent-name",
			Usage: "Agent display name",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "Agent bearer token",
		},
		&cli.StringFlag{
			Name:  "admin-token",
			Usage: "Admin token used to issue an agent token",
		},
	}
}

// loadSettings reads the settings file, applies command-line overrides and validates the result.
func loadSettings(cmd *cli.Command) (*config.Settings, error) {
	settings, err := config.NewSettings(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"base-url":    &settings.World.BaseURL,
		"agent-id":    &settings.World.AgentID,
		"agent-name":  &settings.World.AgentName,
		"token":       &settings.World.Token,
		"admin-token": &settings.World.AdminToken,
	}
	for flag, field := range overrides {
		if v := cmd.String(flag); v != "" {
			*field = v
		}
	}
	if v := cmd.String("log-level"); v != "" {
		settings.Logging.Level = config.LogLevel(v)
	}
	if v := cmd.String("log-format"); v != "" {
		settings.Logging.Format = config.LogFormat(v)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrFailedToValidateConfig, err)
	}
	return settings, nil
}

// setupLogger installs the default logger described by the settings.
func setupLogger(settings *config.Settings) (*slog.Logger, error) {
	return logging.SetupLogger(
		string(settings.Logging.Format),
		string(settings.Logging.Level),
		settings.Logging.Output,
	)
}

// prepare loads settings and installs the logger, the common first step of every command.
func prepare(cmd *cli.Command) (*config.Settings, *slog.Logger, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, cli.Exit(err.Error(), 1)
	}
	logger, err := setupLogger(settings)
	if err != nil {
		return nil, nil, cli.Exit(err.Error(), 1)
	}
	return settings, logger, nil
}
