// ABOUTME: MCP stdio server exposing the note app to AI agents.
// ABOUTME: Pending edits are flushed when the client disconnects.

package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harper/quill/internal/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const instructions = `Quill holds one collection of rich-text notes. Note content is HTML.
Editing a note selects it first; edits made through update_note are saved before the tool returns.`

type Server struct {
	server *mcp.Server
	app    *app.App
	logger *slog.Logger
}

type Option func(*Server)

// WithLogger sets the logger for connection events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer registers the tools, resources and prompts backed by a.
func NewServer(a *app.App, version string, opts ...Option) *Server {
	s := &Server{
		app:    a,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{Name: "quill", Version: version},
		&mcp.ServerOptions{
			Instructions: instructions,
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)
	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// Serve runs over stdio until the client goes away or ctx ends, then saves
// whatever is still pending.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp: serving on stdio")
	return s.run(ctx, &mcp.StdioTransport{})
}

func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	err := s.server.Run(ctx, transport)
	if ferr := s.app.Flush(); ferr != nil {
		s.logger.Warn("mcp: flush after disconnect failed", "error", ferr)
	}
	if err != nil {
		return fmt.Errorf("serve mcp: %w", err)
	}
	s.logger.Info("mcp: client disconnected")
	return nil
}
