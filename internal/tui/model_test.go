// ABOUTME: Tests for the TUI model, confirmer and ordered worker.
// ABOUTME: Exercises state transitions directly without a terminal.

package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/quill/internal/app"
	"github.com/harper/quill/internal/kv"
	"github.com/harper/quill/internal/models"
	"github.com/harper/quill/internal/persist"
)

var epoch = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newModel(t *testing.T) Model {
	t.Helper()
	a := app.New(persist.NewGateway(kv.NewMemory()))
	m := New(a)
	m.now = func() time.Time { return epoch }
	t.Cleanup(func() {
		m.worker.stop()
		_ = a.Close()
	})
	return m
}

func seededView() app.View {
	notes := models.DefaultSeed(epoch)
	return app.View{
		Notes:        notes,
		Total:        len(notes),
		Selected:     notes[0],
		HasSelection: true,
		Title:        notes[0].Title,
		Content:      notes[0].Content,
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApplyBindsInputsOnSelectionChange(t *testing.T) {
	m := newModel(t)
	v := seededView()

	m.apply(v)
	assert.Equal(t, "First note", m.title.Value())
	assert.Equal(t, "Hello world!", m.body.Value())

	// Same note: a later snapshot must not clobber local typing.
	m.body.SetValue("typing ahead")
	v.Content = "older"
	m.apply(v)
	assert.Equal(t, "typing ahead", m.body.Value())

	v.Selected = v.Notes[2]
	v.Title, v.Content = v.Notes[2].Title, v.Notes[2].Content
	m.apply(v)
	assert.Equal(t, "To-do list", m.title.Value())
	assert.Equal(t, 2, m.cursor)
}

func TestApplyForceSync(t *testing.T) {
	m := newModel(t)
	v := seededView()
	m.apply(v)

	m.forceSync = true
	v.Content = `Hello world!<p><img src="a.png"/></p>`
	m.apply(v)

	assert.Equal(t, v.Content, m.body.Value())
	assert.False(t, m.forceSync)
}

func TestApplyWithoutSelectionClearsInputs(t *testing.T) {
	m := newModel(t)
	m.apply(seededView())

	m.apply(app.View{})

	assert.False(t, m.bound)
	assert.Equal(t, "", m.title.Value())
	assert.Equal(t, 0, m.cursor)
}

func TestListNavigation(t *testing.T) {
	m := newModel(t)
	m.apply(seededView())

	updated, _ := m.Update(key("j"))
	m = updated.(Model)
	updated, _ = m.Update(key("j"))
	m = updated.(Model)
	updated, _ = m.Update(key("j"))
	m = updated.(Model)
	assert.Equal(t, 2, m.cursor)

	updated, _ = m.Update(key("k"))
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)
}

func TestConfirmDialogAnswers(t *testing.T) {
	m := newModel(t)
	reply := make(chan bool, 1)

	updated, _ := m.Update(confirmMsg{prompt: "Remove this image?", reply: reply})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Remove this image?")

	updated, _ = m.Update(key("y"))
	m = updated.(Model)
	assert.True(t, <-reply)
	assert.Nil(t, m.confirm)

	updated, _ = m.Update(confirmMsg{prompt: "again", reply: reply})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.False(t, <-reply)
}

func TestFaultScreen(t *testing.T) {
	m := newModel(t)
	v := seededView()
	v.Fault = errors.New("something went wrong: boom")
	m.apply(v)

	out := m.View()

	assert.Contains(t, out, "Something went wrong")
	assert.Contains(t, out, "reload")
}

func TestSidebarShowsNotesAndCount(t *testing.T) {
	m := newModel(t)
	m.apply(seededView())

	out := m.View()

	assert.Contains(t, out, "3 notes")
	assert.Contains(t, out, "First note")
	assert.Contains(t, out, "Yesterday")
}

func TestSidebarEmpty(t *testing.T) {
	m := newModel(t)
	m.apply(app.View{})

	assert.Contains(t, m.View(), "No notes found.")
}

func TestConfirmerRoundTrip(t *testing.T) {
	c := NewConfirmer()
	assert.False(t, c.Confirm("unattached"))

	var prompts []string
	c.Attach(func(msg tea.Msg) {
		cm := msg.(confirmMsg)
		prompts = append(prompts, cm.prompt)
		cm.reply <- strings.HasPrefix(cm.prompt, "yes")
	})
	assert.True(t, c.Confirm("yes please"))
	assert.False(t, c.Confirm("no thanks"))
	assert.Equal(t, []string{"yes please", "no thanks"}, prompts)

	c.Detach()
	assert.False(t, c.Confirm("after detach"))
}

func TestConfirmerDetachUnblocksPendingPrompt(t *testing.T) {
	c := NewConfirmer()
	sent := make(chan struct{})
	c.Attach(func(tea.Msg) { close(sent) })

	result := make(chan bool)
	go func() { result <- c.Confirm("pending") }()
	<-sent
	c.Detach()

	select {
	case ok := <-result:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("confirm did not return after detach")
	}
}

func TestWorkerRunsOpsInOrder(t *testing.T) {
	w := newWorker()
	defer w.stop()

	var got []int
	for i := 0; i < 50; i++ {
		i := i
		w.submit(func() tea.Msg {
			got = append(got, i)
			if i == 49 {
				return statusMsg{text: "done"}
			}
			return nil
		})
	}

	msg := w.next()()
	require.Equal(t, statusMsg{text: "done"}, msg)
	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}
