// Package resolver builds the per-call agent Configuration from an ordered chain of sources.
//
// Every tool invocation resolves afresh, so edits to token files or the environment take effect
// on the next call. Sources never fail: a missing or malformed source contributes nothing.
package resolver

import (
	"context"
	"log/slog"
	"strings"
)

const (
	DefaultBaseURL = "https://www.theebie.de"
	DefaultAgentID = "MalicorSparky2"
)

// Configuration is the immutable view of one tool call.
type Configuration struct {
	BaseURL    string
	AgentID    string
	AgentName  string
	Token      string
	AdminToken string
}

// HasToken reports whether a bearer token was discovered.
func (c Configuration) HasToken() bool {
	return c.Token != ""
}

// Partial is what a single source knows. Empty fields mean "no opinion".
type Partial struct {
	BaseURL    string
	AgentID    string
	AgentName  string
	Token      string
	AdminToken string
}

// Source is one named layer of the chain. Load logs through the resolver's logger.
type Source struct {
	Name string
	Load func(ctx context.Context, logger *slog.Logger) Partial
}

// Resolver merges its sources in order, first non-empty value per field.
type Resolver struct {
	sources []Source
	logger  *slog.Logger
}

// New creates a Resolver. Without WithSources it resolves to the built-in defaults only.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		logger: slog.Default().WithGroup("resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sources returns the names of the configured sources, in resolution order.
func (r *Resolver) Sources() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name
	}
	return names
}

// Resolve walks the chain and applies defaults.
func (r *Resolver) Resolve(ctx context.Context) Configuration {
	var cfg Configuration
	for _, src := range r.sources {
		if ctx.Err() != nil {
			break
		}
		p := src.Load(ctx, r.logger.With("source", src.Name))
		r.take(&cfg.BaseURL, p.BaseURL, "base_url", src.Name)
		r.take(&cfg.AgentID, p.AgentID, "agent_id", src.Name)
		r.take(&cfg.AgentName, p.AgentName, "agent_name", src.Name)
		r.take(&cfg.Token, p.Token, "token", src.Name)
		r.take(&cfg.AdminToken, p.AdminToken, "admin_token", src.Name)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
		r.logger.Debug("Using default", "field", "base_url")
	}
	if cfg.AgentID == "" {
		cfg.AgentID = DefaultAgentID
		r.logger.Debug("Using default", "field", "agent_id")
	}
	if cfg.AgentName == "" {
		cfg.AgentName = cfg.AgentID
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func (r *Resolver) take(dst *string, value, field, source string) {
	if *dst != "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	*dst = value
	r.logger.Debug("Resolved field", "field", field, "source", source)
}
