// ABOUTME: Tests for MCP tool, resource and prompt logic against a live app.
// ABOUTME: Uses the in-memory store so no files are touched.

package mcp

import (
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/quill/internal/app"
	"github.com/harper/quill/internal/kv"
	"github.com/harper/quill/internal/persist"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	a := app.New(persist.NewGateway(kv.NewMemory()))
	t.Cleanup(func() { _ = a.Close() })
	return NewServer(a, "test")
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func decodeNotes(t *testing.T, res *mcp.CallToolResult) []noteJSON {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var out []noteJSON
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	return out
}

func TestListNotes(t *testing.T) {
	s := newTestServer(t)

	notes := decodeNotes(t, s.listNotes(listParams{Limit: 2}))

	require.Len(t, notes, 2)
	assert.Equal(t, int64(1), notes[0].ID)
	assert.Equal(t, "First note", notes[0].Title)
}

func TestSearchNotes(t *testing.T) {
	s := newTestServer(t)

	notes := decodeNotes(t, s.listNotes(listParams{Query: "MILK"}))

	require.Len(t, notes, 1)
	assert.Equal(t, int64(3), notes[0].ID)
}

func TestCreateNote(t *testing.T) {
	s := newTestServer(t)

	res := s.createNote(createParams{Title: "From agent", Content: "<p>hi</p>"})
	require.False(t, res.IsError, resultText(t, res))

	notes := decodeNotes(t, s.listNotes(listParams{}))
	require.Len(t, notes, 4)
	assert.Equal(t, "From agent", notes[0].Title)
	assert.Equal(t, "<p>hi</p>", notes[0].Content)
}

func TestUpdateNoteSelectsThenEdits(t *testing.T) {
	s := newTestServer(t)
	title := "Renamed"

	res := s.updateNote(updateParams{ID: 2, Title: &title})
	require.False(t, res.IsError, resultText(t, res))

	var note noteJSON
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &note))
	assert.Equal(t, "Renamed", note.Title)
	assert.Equal(t, "Stylish notes", note.Content)

	v, err := s.app.View()
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Selected.ID)
}

func TestUpdateNoteRequiresFields(t *testing.T) {
	s := newTestServer(t)

	assert.True(t, s.updateNote(updateParams{ID: 1}).IsError)
}

func TestUpdateUnknownNote(t *testing.T) {
	s := newTestServer(t)
	body := "x"

	assert.True(t, s.updateNote(updateParams{ID: 99, Content: &body}).IsError)
}

func TestGetAndDeleteNote(t *testing.T) {
	s := newTestServer(t)

	res := s.getNote(idParams{ID: 3})
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "To-do list")

	require.False(t, s.deleteNote(idParams{ID: 3}).IsError)
	assert.True(t, s.getNote(idParams{ID: 3}).IsError)
	assert.True(t, s.deleteNote(idParams{ID: 3}).IsError)
}

func TestSelectNote(t *testing.T) {
	s := newTestServer(t)

	assert.False(t, s.selectNote(idParams{ID: 3}).IsError)
	assert.True(t, s.selectNote(idParams{ID: 42}).IsError)
}

func TestReadNoteResource(t *testing.T) {
	s := newTestServer(t)

	text, err := s.readNote("quill://note/3")
	require.NoError(t, err)
	assert.Equal(t, "# To-do list\n\nBuy milk\nDo homework\nWalk the dog", text)

	_, err = s.readNote("quill://note/abc")
	assert.Error(t, err)
	_, err = s.readNote("quill://note/404")
	assert.Error(t, err)
}

func TestPrompts(t *testing.T) {
	_, err := summarizePrompt("")
	assert.Error(t, err)

	text, err := summarizePrompt("7")
	require.NoError(t, err)
	assert.Contains(t, text, "ID: 7")

	assert.Contains(t, todoPrompt(""), "today")
	assert.Contains(t, todoPrompt("groceries"), "groceries")
}
