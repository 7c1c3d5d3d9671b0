// Package mcp is a thin client for a remote moltworld MCP server.
package mcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Session is an open MCP session.
type Session interface {
	// CallTool invokes a tool and returns the text of its result.
	CallTool(ctx context.Context, name string, args map[string]any) (*CallToolResult, error)

	// ListTools returns all tools the server advertises.
	ListTools(ctx context.Context) ([]Tool, error)

	// Close terminates the session.
	Close() error
}

// CallToolResult is the text content of a tool result.
type CallToolResult struct {
	Text    []string
	IsError bool
}

// Joined returns all text parts joined by newlines.
func (r *CallToolResult) Joined() string {
	return strings.Join(r.Text, "\n")
}

// Tool is one advertised tool.
type Tool struct {
	Name        string
	Description string
}

// Implementation names this client to the server.
type Implementation struct {
	Name    string
	Version string
}

// Client opens sessions against MCP servers.
type Client struct {
	mcpClient  *mcpsdk.Client
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient.
func NewClient(impl Implementation, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		mcpClient: mcpsdk.NewClient(&mcpsdk.Implementation{
			Name:    impl.Name,
			Version: impl.Version,
		}, nil),
		httpClient: httpClient,
	}
}

// Dial connects to a streamable HTTP endpoint.
func (c *Client) Dial(ctx context.Context, endpoint string) (Session, error) {
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	return c.Connect(ctx, &mcpsdk.StreamableClientTransport{
		Endpoint:   endpoint,
		HTTPClient: c.httpClient,
	})
}

// Connect establishes a session over any SDK transport.
func (c *Client) Connect(ctx context.Context, transport mcpsdk.Transport) (Session, error) {
	if transport == nil {
		return nil, ErrInvalidTransport
	}
	cs, err := c.mcpClient.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return &session{cs: cs}, nil
}

type session struct {
	cs *mcpsdk.ClientSession
}

func (s *session) CallTool(ctx context.Context, name string, args map[string]any) (*CallToolResult, error) {
	if args == nil {
		args = map[string]any{}
	}
	result, err := s.cs.CallTool(ctx, &mcpsdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, err
	}

	out := &CallToolResult{IsError: result.IsError}
	for _, content := range result.Content {
		text, ok := content.(*mcpsdk.TextContent)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedContent, content)
		}
		out.Text = append(out.Text, text.Text)
	}
	return out, nil
}

func (s *session) ListTools(ctx context.Context) ([]Tool, error) {
	result, err := s.cs.ListTools(ctx, &mcpsdk.ListToolsParams{})
	if err != nil {
		return nil, err
	}
	tools := make([]Tool, len(result.Tools))
	for i, t := range result.Tools {
		tools[i] = Tool{Name: t.Name, Description: t.Description}
	}
	return tools, nil
}

func (s *session) Close() error {
	return s.cs.Close()
}
