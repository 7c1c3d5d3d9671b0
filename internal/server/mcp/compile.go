// Package mcp exposes the tool registry as a Model Context Protocol server.
package mcp

import (
	"context"

	"github.com/malicorX/moltworld/internal/tools"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Compile builds an MCP server with one tool per registry entry. The registry does its own
// argument validation, so tools are registered raw and receive the undecoded arguments.
func Compile(registry *tools.Registry, impl *mcpsdk.Implementation) *mcpsdk.Server {
	server := mcpsdk.NewServer(impl, nil)
	for _, tool := range registry.Tools() {
		server.AddTool(&mcpsdk.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.Schema,
		}, toolHandler(registry, tool.Name))
	}
	return server
}

func toolHandler(registry *tools.Registry, name string) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		var args []byte
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		return toResult(registry.Call(ctx, name, args)), nil
	}
}

// toResult converts an envelope. Tool failures are reported inside the payload, not as
// protocol errors.
func toResult(env tools.Envelope) *mcpsdk.CallToolResult {
	content := make([]mcpsdk.Content, 0, len(env.Content))
	for _, c := range env.Content {
		content = append(content, &mcpsdk.TextContent{Text: c.Text})
	}
	return &mcpsdk.CallToolResult{Content: content}
}
