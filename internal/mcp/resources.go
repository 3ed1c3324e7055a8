// ABOUTME: MCP resources for exposing notes as readable resources.
// ABOUTME: Allows AI agents to access note content via URI scheme.

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/quill/internal/ui"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noteURIPrefix = "quill://note/"

func (s *Server) registerResources() {
	// The SDK handles listing based on the template
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	text, err := s.readNote(req.Params.URI)
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     text,
			},
		},
	}, nil
}

// readNote renders the note at uri as markdown.
func (s *Server) readNote(uri string) (string, error) {
	var id int64
	if _, err := fmt.Sscanf(uri, noteURIPrefix+"%d", &id); err != nil {
		return "", fmt.Errorf("invalid resource URI: %s", uri)
	}

	note, err := s.app.Get(id)
	if err != nil {
		return "", fmt.Errorf("failed to get note: %w", err)
	}

	content := fmt.Sprintf("# %s\n\n", ui.DisplayTitle(note))
	content += ui.PlainText(note.Content)
	return content, nil
}
