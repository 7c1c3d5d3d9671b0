package main

import (
	"context"
	"fmt"

	"github.com/malicorX/moltworld/internal/config"
	"github.com/urfave/cli/v3"
)

var validateCmd = &cli.Command{
	Name:      "validate",
	Aliases:   []string{"lint"},
	Usage:     "Validate a settings file",
	ArgsUsage: "<file>",
	Action:    validateAction,
}

func validateAction(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().Get(0)
	if path == "" {
		path = cmd.String("config")
	}
	if path == "" {
		return cli.Exit("settings file path required (positional argument or --config)", 1)
	}

	settings, err := config.NewSettings(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("validation failed: %v", err), 1)
	}

	out := cmd.Root().Writer
	if _, err := fmt.Fprintf(out, "Settings file %s is valid\n\n", path); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, settings.ToTree())
	return err
}
