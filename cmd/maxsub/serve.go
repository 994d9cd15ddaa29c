package main

import (
	"github.com/mark3labs/mcp-go/server"
)

// serveStdio runs the MCP server until stdin closes. The stdio server
// handles SIGINT/SIGTERM itself.
var serveStdio = func(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
