// Package tools implements the MoltWorld tools and the registry that dispatches calls to them.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/malicorX/moltworld/internal/diag"
	"github.com/malicorX/moltworld/internal/fetch"
	"github.com/malicorX/moltworld/internal/journal"
	"github.com/malicorX/moltworld/internal/resolver"
	"github.com/malicorX/moltworld/internal/world"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Tool names, in registration order.
const (
	NameWorldState  = "world_state"
	NameGoTo        = "go_to"
	NameWorldAction = "world_action"
	NameChatSay     = "chat_say"
	NameChatShout   = "chat_shout"
	NameFetchURL    = "fetch_url"
	NameChatInbox   = "chat_inbox"
	NameBoardPost   = "board_post"
)

// handler produces the payload for one call and the upstream HTTP status, if any.
type handler func(ctx context.Context, call *invocation) (payload any, status int)

type invocation struct {
	id     string
	cfg    resolver.Configuration
	args   Args
	logger *slog.Logger
}

// Tool is one registered tool.
type Tool struct {
	Name        string
	Description string
	Schema      map[string]any

	handle    handler
	validator *jsonschema.Schema
}

// Registry holds the tools and the collaborators they share.
type Registry struct {
	tools  []*Tool
	byName map[string]*Tool

	resolver   *resolver.Resolver
	api        *world.API
	fetcher    *fetch.Fetcher
	diag       *diag.Writer
	diagName   string
	journal    *journal.Journal
	directChat resolver.DirectChat
	logger     *slog.Logger
	now        func() time.Time
}

// New builds the registry with all eight tools.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		resolver:   resolver.New(),
		fetcher:    fetch.New(),
		diagName:   "moltworld_chat_say_result.json",
		directChat: resolver.DirectChat{},
		logger:     slog.Default().WithGroup("tools"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.api == nil {
		r.api = world.NewAPI(world.NewGateway(world.NewSession(), world.WithLogger(r.logger)))
	}

	r.byName = make(map[string]*Tool)
	for _, t := range r.definitions() {
		v, err := compileValidator(t.Name, t.Schema)
		if err != nil {
			return nil, err
		}
		t.validator = v
		r.tools = append(r.tools, t)
		r.byName[t.Name] = t
	}
	return r, nil
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []*Tool {
	return r.tools
}

// Lookup finds a tool by name.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Session returns the token cache shared by every tool.
func (r *Registry) Session() *world.Session {
	return r.api.Gateway().Session()
}

// Call runs one tool. Domain failures are reported inside the envelope; Call never fails.
func (r *Registry) Call(ctx context.Context, name string, raw json.RawMessage) Envelope {
	start := r.now()
	id := newInvocationID()
	logger := r.logger.With("tool", name, "invocation_id", id)

	t, ok := r.byName[name]
	if !ok {
		logger.Warn("Unknown tool")
		return NewEnvelope(failure(fmt.Sprintf("%s: %s", ErrUnknownTool, name)))
	}

	cfg := r.resolver.Resolve(ctx)
	var (
		payload any
		status  int
	)
	args, err := decodeArgs(raw)
	if err == nil {
		if verr := t.validator.Validate(map[string]any(args)); verr != nil {
			err = fmt.Errorf("%w: %s", ErrInvalidArguments, validationMessage(verr))
		}
	}
	if err != nil {
		payload = failure(err.Error())
	} else {
		payload, status = t.handle(ctx, &invocation{id: id, cfg: cfg, args: args, logger: logger})
	}

	entry := journal.Entry{
		ID:        id,
		Tool:      name,
		AgentID:   cfg.AgentID,
		StartedAt: start,
		Duration:  r.now().Sub(start),
		Status:    status,
		Error:     errorOf(payload),
	}
	entry.OK = entry.Error == "" && (status == 0 || (status >= 200 && status < 300))
	if err := r.journal.Record(ctx, entry); err != nil {
		logger.Warn("Journal write failed", "error", err)
	}

	logger.Info("Tool call complete", "ok", entry.OK, "status", status, "duration", entry.Duration)
	return NewEnvelope(payload)
}

func newInvocationID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Sprintf("inv-%d", time.Now().UnixNano())
	}
	return id.String()
}

func errorOf(payload any) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m["error"].(string)
	return s
}
