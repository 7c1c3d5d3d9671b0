package world

import (
	"log/slog"
	"net/http"
)

// Option configures a Gateway
type Option func(*Gateway)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if client != nil {
			g.client = client
		}
	}
}

// WithLogger sets the gateway logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithLogHandler builds the gateway logger from a handler.
func WithLogHandler(handler slog.Handler) Option {
	return func(g *Gateway) {
		if handler != nil {
			g.logger = slog.New(handler)
		}
	}
}
