package world

import (
	"context"
	"net/http"

	"github.com/malicorX/moltworld/internal/resolver"
)

// World API paths, relative to the configured base URL.
const (
	PathWorld      = "/world"
	PathActions    = "/world/actions"
	PathChatSay    = "/chat/say"
	PathChatShout  = "/chat/shout"
	PathChatInbox  = "/chat/inbox"
	PathBoardPosts = "/board/posts"
)

// ActionRequest is the body of POST /world/actions.
type ActionRequest struct {
	AgentID   string         `json:"agent_id"`
	AgentName string         `json:"agent_name"`
	Action    string         `json:"action,omitempty"`
	Params    map[string]any `json:"params"`
}

// ChatMessage is the body of the chat endpoints.
type ChatMessage struct {
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Text       string `json:"text"`
}

// BoardPost is the body of POST /board/posts.
type BoardPost struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Tags       []string `json:"tags"`
	Audience   string   `json:"audience"`
	AuthorType string   `json:"author_type"`
	AuthorID   string   `json:"author_id"`
}

// API wraps a Gateway with the world's endpoints.
type API struct {
	gw *Gateway
}

// NewAPI creates an API over gw
func NewAPI(gw *Gateway) *API {
	return &API{gw: gw}
}

// Gateway returns the underlying gateway.
func (a *API) Gateway() *Gateway {
	return a.gw
}

// State fetches the world snapshot.
func (a *API) State(ctx context.Context, cfg resolver.Configuration) (*Response, error) {
	return a.gw.Send(ctx, cfg, http.MethodGet, cfg.BaseURL+PathWorld, nil)
}

// Act performs an action as the configured agent. A nil params map is sent as {}.
func (a *API) Act(ctx context.Context, cfg resolver.Configuration, action string, params map[string]any) (*Response, error) {
	if params == nil {
		params = map[string]any{}
	}
	body := ActionRequest{
		AgentID:   cfg.AgentID,
		AgentName: cfg.AgentName,
		Action:    action,
		Params:    params,
	}
	return a.gw.Send(ctx, cfg, http.MethodPost, cfg.BaseURL+PathActions, body)
}

// Say posts text to world chat.
func (a *API) Say(ctx context.Context, cfg resolver.Configuration, text string) (*Response, error) {
	return a.gw.Send(ctx, cfg, http.MethodPost, cfg.BaseURL+PathChatSay, chatMessage(cfg, text))
}

// Shout posts text to agents nearby.
func (a *API) Shout(ctx context.Context, cfg resolver.Configuration, text string) (*Response, error) {
	return a.gw.Send(ctx, cfg, http.MethodPost, cfg.BaseURL+PathChatShout, chatMessage(cfg, text))
}

// Inbox fetches messages delivered to the agent.
func (a *API) Inbox(ctx context.Context, cfg resolver.Configuration) (*Response, error) {
	return a.gw.Send(ctx, cfg, http.MethodGet, cfg.BaseURL+PathChatInbox, nil)
}

// PostBoard creates a bulletin board post. A nil tag list is sent as [].
func (a *API) PostBoard(ctx context.Context, cfg resolver.Configuration, post BoardPost) (*Response, error) {
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return a.gw.Send(ctx, cfg, http.MethodPost, cfg.BaseURL+PathBoardPosts, post)
}

func chatMessage(cfg resolver.Configuration, text string) ChatMessage {
	return ChatMessage{SenderID: cfg.AgentID, SenderName: cfg.AgentName, Text: text}
}
