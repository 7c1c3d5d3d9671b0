// Package httpserver hosts the MCP HTTP routes on a go-supervisor runnable.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/malicorX/moltworld/internal/config"
	"github.com/robbyt/go-supervisor/runnables/httpserver"
	"github.com/robbyt/go-supervisor/supervisor"
)

var (
	_ supervisor.Runnable  = (*HTTPServer)(nil)
	_ supervisor.Stateable = (*HTTPServer)(nil)
)

// Timeouts for the HTTP server. Zero values leave the go-supervisor defaults in place.
type Timeouts struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	DrainTimeout time.Duration
}

// TimeoutsFromSettings copies the server timeouts out of the settings file.
func TimeoutsFromSettings(s config.ServerSettings) Timeouts {
	return Timeouts{
		ReadTimeout:  s.ReadTimeout.AsDuration(),
		WriteTimeout: s.WriteTimeout.AsDuration(),
		IdleTimeout:  s.IdleTimeout.AsDuration(),
		DrainTimeout: s.DrainTimeout.AsDuration(),
	}
}

// serverImplementation is the subset of httpserver.Runner used here.
type serverImplementation interface {
	Run(ctx context.Context) error
	Stop()
	GetState() string
	IsReady() bool
	GetStateChan(ctx context.Context) <-chan string
}

// HTTPServer wraps the go-supervisor's httpserver.Runner with a fixed route set.
type HTTPServer struct {
	id       string
	address  string
	routes   []httpserver.Route
	timeouts Timeouts
	server   serverImplementation
	logger   *slog.Logger
}

// NewHTTPServer creates the runnable. Routes are fixed for its lifetime.
func NewHTTPServer(
	id, address string,
	routes []httpserver.Route,
	timeouts Timeouts,
	logger *slog.Logger,
) (*HTTPServer, error) {
	if address == "" {
		return nil, fmt.Errorf("HTTP server %s: listen address is required", id)
	}
	if logger == nil {
		logger = slog.Default().WithGroup("httpserver").With("id", id)
	}

	s := &HTTPServer{
		id:       id,
		address:  address,
		routes:   routes,
		timeouts: timeouts,
		logger:   logger,
	}

	runner, err := httpserver.NewRunner(
		httpserver.WithConfigCallback(s.buildConfig),
		httpserver.WithLogHandler(logger.Handler()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server runner: %w", err)
	}
	s.server = runner
	return s, nil
}

func (s *HTTPServer) buildConfig() (*httpserver.Config, error) {
	var options []httpserver.ConfigOption
	if s.timeouts.ReadTimeout > 0 {
		options = append(options, httpserver.WithReadTimeout(s.timeouts.ReadTimeout))
	}
	if s.timeouts.WriteTimeout > 0 {
		options = append(options, httpserver.WithWriteTimeout(s.timeouts.WriteTimeout))
	}
	if s.timeouts.IdleTimeout > 0 {
		options = append(options, httpserver.WithIdleTimeout(s.timeouts.IdleTimeout))
	}
	if s.timeouts.DrainTimeout > 0 {
		options = append(options, httpserver.WithDrainTimeout(s.timeouts.DrainTimeout))
	}

	cfg, err := httpserver.NewConfig(s.address, s.routes, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server config: %w", err)
	}
	return cfg, nil
}

// String returns a unique identifier for this server
func (s *HTTPServer) String() string {
	return fmt.Sprintf("HTTPServer[%s]", s.id)
}

// Run starts the HTTP server and blocks until it stops.
func (s *HTTPServer) Run(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", "address", s.address, "routes", len(s.routes))
	return s.server.Run(ctx)
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() {
	s.logger.Info("Stopping HTTP server", "address", s.address)
	s.server.Stop()
}

// GetState returns the current state of the server
func (s *HTTPServer) GetState() string {
	return s.server.GetState()
}

// IsReady reports whether the server finished booting and is accepting requests.
func (s *HTTPServer) IsReady() bool {
	return s.server.IsReady()
}

// GetStateChan returns a channel that emits state changes
func (s *HTTPServer) GetStateChan(ctx context.Context) <-chan string {
	return s.server.GetStateChan(ctx)
}

// Address returns the address this server listens on
func (s *HTTPServer) Address() string {
	return s.address
}
