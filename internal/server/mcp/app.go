package mcp

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/robbyt/go-supervisor/runnables/httpserver"
)

// HealthPath is served next to the MCP endpoint.
const HealthPath = "/healthz"

// App serves the compiled MCP server over streamable HTTP.
type App struct {
	id      string
	path    string
	handler http.Handler
}

// New creates a new MCP App from a Config DTO.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MCP config cannot be nil")
	}
	if cfg.CompiledServer == nil {
		return nil, fmt.Errorf("%w for app %s", ErrServerNotCompiled, cfg.ID)
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, cfg.Path)
	}

	handler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return cfg.CompiledServer
	}, nil)

	return &App{
		id:      cfg.ID,
		path:    cfg.Path,
		handler: handler,
	}, nil
}

// String returns the unique identifier of the application.
func (a *App) String() string {
	return a.id
}

// Path returns the mount path of the MCP endpoint.
func (a *App) Path() string {
	return a.path
}

// ServeHTTP delegates to the SDK's streamable HTTP handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// Routes returns the MCP route and the health route, each wrapped in the given middleware.
func (a *App) Routes(middlewares ...httpserver.HandlerFunc) ([]httpserver.Route, error) {
	mcpRoute, err := httpserver.NewRouteFromHandlerFunc(a.id, a.path, a.ServeHTTP, middlewares...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP route: %w", err)
	}
	healthRoute, err := httpserver.NewRouteFromHandlerFunc(a.id+"-health", HealthPath, serveHealth, middlewares...)
	if err != nil {
		return nil, fmt.Errorf("failed to create health route: %w", err)
	}
	return []httpserver.Route{*mcpRoute, *healthRoute}, nil
}

func serveHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, `{"ok":true}`)
}
