package mcp

import (
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config contains everything needed to instantiate an MCP app.
type Config struct {
	// ID names the app in logs and route names.
	ID string

	// Path is where the streamable HTTP endpoint is mounted.
	Path string

	// CompiledServer is the output of Compile.
	CompiledServer *mcpsdk.Server
}
