package mcp

import "errors"

var (
	// ErrServerNotCompiled is returned when an app or runner is built without a compiled server.
	ErrServerNotCompiled = errors.New("MCP server is nil")

	// ErrInvalidPath is returned when the HTTP mount path does not start with a slash.
	ErrInvalidPath = errors.New("MCP path must start with /")
)
