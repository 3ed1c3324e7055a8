// ABOUTME: MCP prompts for common note-taking workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	// SDK handles listing
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Generate a summary of an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-todo-list",
		Description: "Create a checklist note from a short description",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "topic",
				Description: "What the list is for",
				Required:    false,
			},
		},
	}, s.getTodoListPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "tidy-notes",
		Description: "Find empty, untitled or duplicate notes worth cleaning up",
	}, s.getTidyNotesPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func summarizePrompt(noteID string) (string, error) {
	if noteID == "" {
		return "", fmt.Errorf("note_id argument is required")
	}
	return fmt.Sprintf(`Please summarize the note with ID: %s

1. Use the get_note tool to retrieve the note content
2. Read and analyze the note
3. Create a concise summary highlighting:
   - Main topic or theme
   - Key points or takeaways
   - Important details or action items
4. Use the update_note tool to add a "Summary" paragraph at the top of the note content`, noteID), nil
}

func todoPrompt(topic string) string {
	if topic == "" {
		topic = "today"
	}
	return fmt.Sprintf(`Create a to-do list note for: %s

1. Use the create_note tool with a short title
2. Write the content as HTML paragraphs, one task per paragraph
3. Keep each task to a single actionable line`, topic)
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text, err := summarizePrompt(req.Params.Arguments["note_id"])
	if err != nil {
		return nil, err
	}
	return userPrompt(text), nil
}

func (s *Server) getTodoListPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(todoPrompt(req.Params.Arguments["topic"])), nil
}

func (s *Server) getTidyNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(`Help me tidy my notes:

1. Use the list_notes tool to see all notes
2. Point out notes with no title or no content
3. Point out notes that look like duplicates of each other
4. Suggest which to merge with update_note and which to remove with delete_note

Refer to notes by ID.`), nil
}
