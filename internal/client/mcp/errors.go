package mcp

import "errors"

var (
	ErrMissingEndpoint    = errors.New("MCP endpoint is required")
	ErrInvalidTransport   = errors.New("invalid transport type")
	ErrConnect            = errors.New("failed to connect to MCP server")
	ErrUnsupportedContent = errors.New("unsupported content type")
)
