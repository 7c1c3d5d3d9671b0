package tools

import (
	"log/slog"
	"time"

	"github.com/malicorX/moltworld/internal/diag"
	"github.com/malicorX/moltworld/internal/fetch"
	"github.com/malicorX/moltworld/internal/journal"
	"github.com/malicorX/moltworld/internal/resolver"
	"github.com/malicorX/moltworld/internal/world"
)

// Option configures a Registry
type Option func(*Registry)

// WithResolver sets the configuration resolver consulted on every call.
func WithResolver(res *resolver.Resolver) Option {
	return func(r *Registry) {
		if res != nil {
			r.resolver = res
		}
	}
}

// WithAPI sets the world API client.
func WithAPI(api *world.API) Option {
	return func(r *Registry) {
		if api != nil {
			r.api = api
		}
	}
}

// WithFetcher sets the fetch_url page fetcher.
func WithFetcher(f *fetch.Fetcher) Option {
	return func(r *Registry) {
		if f != nil {
			r.fetcher = f
		}
	}
}

// WithDiagnostics enables the chat_say diagnostic record. An empty name keeps the default.
func WithDiagnostics(w *diag.Writer, name string) Option {
	return func(r *Registry) {
		r.diag = w
		if name != "" {
			r.diagName = name
		}
	}
}

// WithJournal records every invocation. A nil journal disables recording.
func WithJournal(j *journal.Journal) Option {
	return func(r *Registry) {
		r.journal = j
	}
}

// WithDirectChat sets the toggle read by world_state.
func WithDirectChat(d resolver.DirectChat) Option {
	return func(r *Registry) {
		r.directChat = d
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLogHandler builds the registry logger from a handler.
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Registry) {
		if handler != nil {
			r.logger = slog.New(handler)
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}
