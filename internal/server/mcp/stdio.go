package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/robbyt/go-supervisor/supervisor"
)

var _ supervisor.Runnable = (*StdioRunner)(nil)

// StdioRunner serves the MCP server over stdin/stdout until stdin closes or it is stopped.
type StdioRunner struct {
	server    *mcpsdk.Server
	transport mcpsdk.Transport
	logger    *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	onDone func()
}

// NewStdioRunner creates a runner over the process's stdio. A nil transport means stdio.
func NewStdioRunner(server *mcpsdk.Server, transport mcpsdk.Transport, logger *slog.Logger) (*StdioRunner, error) {
	if server == nil {
		return nil, ErrServerNotCompiled
	}
	if transport == nil {
		transport = &mcpsdk.StdioTransport{}
	}
	if logger == nil {
		logger = slog.Default().WithGroup("stdio")
	}
	return &StdioRunner{server: server, transport: transport, logger: logger}, nil
}

// String returns the runnable name used by the supervisor.
func (s *StdioRunner) String() string {
	return "StdioRunner"
}

// OnDone registers fn to be called once Run returns. The supervisor keeps running after a
// runnable exits cleanly, so the caller uses this to shut it down when stdin closes.
func (s *StdioRunner) OnDone(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDone = fn
}

// Run blocks until the client disconnects or ctx is cancelled. A closed stdin is a clean exit.
func (s *StdioRunner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	onDone := s.onDone
	s.mu.Unlock()
	defer cancel()
	if onDone != nil {
		defer onDone()
	}

	s.logger.Info("Serving MCP over stdio")
	err := s.server.Run(ctx, s.transport)
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		s.logger.Info("Stdio session ended")
		return nil
	default:
		return fmt.Errorf("stdio session: %w", err)
	}
}

// Stop cancels a running session.
func (s *StdioRunner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}
