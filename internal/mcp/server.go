// ABOUTME: MCP server setup for the wellness coach.
// ABOUTME: Wraps MCP server with storage, tip selection, and the chat session.
package mcp

import (
	"context"

	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/storage"
	"github.com/harperreed/coach/internal/tips"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with coach services.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	tips      *tips.Selector
	session   *coach.Session
}

// NewServer creates a new MCP server over the given store and services.
func NewServer(repo storage.Repository, selector *tips.Selector, session *coach.Session) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "coach",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		tips:      selector,
		session:   session,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
