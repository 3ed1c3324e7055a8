// ABOUTME: MCP tools for note CRUD operations.
// ABOUTME: Every edit goes through the app so selection and debounce rules apply.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/quill/internal/codec"
	"github.com/harper/quill/internal/models"
	"github.com/harper/quill/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type noteJSON struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updatedAt"`
}

func toJSON(n models.Note) noteJSON {
	return noteJSON{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		UpdatedAt: codec.FormatTime(n.UpdatedAt),
	}
}

type listParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type idParams struct {
	ID int64 `json:"id"`
}

type createParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateParams struct {
	ID      int64   `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (s *Server) registerTools() {
	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes, newest first",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListNotes)

	// search_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "search_notes",
		Description: "Case-insensitive search over note titles and content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query"},
				"limit": {"type": "integer", "description": "Max results", "default": 10}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Note ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	// create_note
	s.server.AddTool(&mcp.Tool{
		Name:        "create_note",
		Description: "Create a new note and select it",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"content": {"type": "string", "description": "Note content (HTML)"}
			}
		}`),
	}, s.handleCreateNote)

	// select_note
	s.server.AddTool(&mcp.Tool{
		Name:        "select_note",
		Description: "Select the note that edits apply to",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Note ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleSelectNote)

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Select a note and update its title or content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Note ID"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content (HTML)"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Note ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func toolJSON(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return toolText(string(data))
}

// Tool handlers.
func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := listParams{Limit: 20}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	return s.listNotes(params), nil
}

func (s *Server) handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := listParams{Limit: 10}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	return s.listNotes(params), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params idParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	return s.getNote(params), nil
}

func (s *Server) handleCreateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params createParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	return s.createNote(params), nil
}

func (s *Server) handleSelectNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params idParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	return s.selectNote(params), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params updateParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	return s.updateNote(params), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params idParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	return s.deleteNote(params), nil
}

func (s *Server) listNotes(params listParams) *mcp.CallToolResult {
	all, err := s.app.Notes()
	if err != nil {
		return toolError("failed to list notes: %v", err)
	}
	matched := search.Filter(all, params.Query)
	if params.Limit > 0 && len(matched) > params.Limit {
		matched = matched[:params.Limit]
	}
	out := make([]noteJSON, len(matched))
	for i, n := range matched {
		out[i] = toJSON(n)
	}
	return toolJSON(out)
}

func (s *Server) getNote(params idParams) *mcp.CallToolResult {
	note, err := s.app.Get(params.ID)
	if err != nil {
		return toolError("failed to get note: %v", err)
	}
	return toolJSON(toJSON(note))
}

func (s *Server) createNote(params createParams) *mcp.CallToolResult {
	note, err := s.app.Create()
	if err != nil {
		return toolError("failed to create note: %v", err)
	}
	if err := s.edit(note.ID, &params.Title, &params.Content); err != nil {
		return toolError("failed to write note %d: %v", note.ID, err)
	}
	return toolText(fmt.Sprintf("Created note %d", note.ID))
}

func (s *Server) selectNote(params idParams) *mcp.CallToolResult {
	if err := s.app.Select(params.ID); err != nil {
		return toolError("failed to select note: %v", err)
	}
	return toolText(fmt.Sprintf("Selected note %d", params.ID))
}

func (s *Server) updateNote(params updateParams) *mcp.CallToolResult {
	if params.Title == nil && params.Content == nil {
		return toolError("nothing to update: provide title or content")
	}
	if err := s.app.Select(params.ID); err != nil {
		return toolError("failed to find note: %v", err)
	}
	if err := s.edit(params.ID, params.Title, params.Content); err != nil {
		return toolError("failed to update note: %v", err)
	}
	note, err := s.app.Get(params.ID)
	if err != nil {
		return toolError("failed to read back note: %v", err)
	}
	return toolJSON(toJSON(note))
}

func (s *Server) deleteNote(params idParams) *mcp.CallToolResult {
	if err := s.app.Delete(params.ID); err != nil {
		return toolError("failed to delete note: %v", err)
	}
	return toolText(fmt.Sprintf("Deleted note %d", params.ID))
}

// edit applies title and content to the selected note and commits at once.
func (s *Server) edit(id int64, title, content *string) error {
	if title != nil {
		if err := s.app.SetTitle(*title); err != nil {
			return err
		}
	}
	if content != nil {
		if err := s.app.EditContent(*content); err != nil {
			return err
		}
	}
	return s.app.Flush()
}
