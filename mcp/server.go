package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "estate-listings"
	serverVersion = "1.0.0"
)

func newServer(t *Tools) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	t.register(s)
	return s
}

// Serve starts the MCP stdio server with all tools registered.
func Serve(t *Tools) error {
	return server.ServeStdio(newServer(t))
}
