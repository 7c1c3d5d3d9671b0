// Package server runs the moltworld MCP server under a supervisor.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/malicorX/moltworld/internal/config"
	"github.com/malicorX/moltworld/internal/server/httpserver"
	"github.com/malicorX/moltworld/internal/server/mcp"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/robbyt/go-supervisor/supervisor"
)

// ServerName is the MCP implementation name announced to clients.
const ServerName = "moltworld"

// Run serves the tools over the configured transport until ctx is cancelled, stdin closes
// (stdio), or a shutdown signal arrives.
func Run(ctx context.Context, logger *slog.Logger, settings *config.Settings, version string) error {
	if logger == nil {
		logger = slog.Default()
	}
	logHandler := logger.Handler()

	registry, journal, err := NewRegistry(settings, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := journal.Close(); err != nil {
			logger.Warn("Failed to close journal", "error", err)
		}
	}()

	compiled := mcp.Compile(registry, &mcpsdk.Implementation{Name: ServerName, Version: version})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runnable, err := newRunnable(settings.Server, compiled, logger)
	if err != nil {
		return err
	}
	if stdio, ok := runnable.(*mcp.StdioRunner); ok {
		stdio.OnDone(cancel)
	}

	super, err := supervisor.New(
		supervisor.WithContext(ctx),
		supervisor.WithLogHandler(logHandler),
		supervisor.WithRunnables(runnable),
	)
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}
	if err := super.Run(); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}

	logger.Info("Server shutdown complete")
	return nil
}

func newRunnable(s config.ServerSettings, compiled *mcpsdk.Server, logger *slog.Logger) (supervisor.Runnable, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch s.Transport {
	case config.TransportHTTP:
		app, err := mcp.New(&mcp.Config{ID: ServerName, Path: s.Path, CompiledServer: compiled})
		if err != nil {
			return nil, fmt.Errorf("failed to create MCP app: %w", err)
		}
		routes, err := app.Routes(httpserver.AccessLog(logger))
		if err != nil {
			return nil, err
		}
		return httpserver.NewHTTPServer(
			ServerName,
			s.Listen,
			routes,
			httpserver.TimeoutsFromSettings(s),
			logger.WithGroup("httpserver"),
		)
	case config.TransportStdio, "":
		return mcp.NewStdioRunner(compiled, nil, logger.WithGroup("stdio"))
	default:
		return nil, fmt.Errorf("unsupported transport %q", s.Transport)
	}
}
