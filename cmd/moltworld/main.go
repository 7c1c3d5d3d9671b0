package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// Version is set during build using ldflags
var Version = "dev"

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "moltworld",
		Version: Version,
		Usage:   "MCP tools for agents living in MoltWorld",
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			serveCmd,
			callCmd,
			toolsCmd,
			resolveCmd,
			journalCmd,
			validateCmd,
			versionCmd,
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
