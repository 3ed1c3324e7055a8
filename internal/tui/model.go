// ABOUTME: Bubble Tea model for the interactive two-pane note editor.
// ABOUTME: Sidebar with search and list, editor with title and content, image dialogs.

package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harper/quill/internal/app"
	"github.com/harper/quill/internal/models"
	"github.com/harper/quill/internal/ui"
)

type focus int

const (
	focusList focus = iota
	focusSearch
	focusTitle
	focusBody
	focusImagePath
)

// viewMsg carries a fresh app snapshot.
type viewMsg struct {
	view app.View
	err  error
}

// changedMsg reports that app state changed.
type changedMsg struct{}

// statusMsg reports the outcome of an operation. resync reloads the editor
// inputs even when the selection did not change.
type statusMsg struct {
	text   string
	err    error
	resync bool
}

type Model struct {
	app    *app.App
	worker *worker
	now    func() time.Time

	view      app.View
	bound     bool
	boundID   int64
	forceSync bool
	cursor    int
	focus     focus

	search    textinput.Model
	title     textinput.Model
	body      textarea.Model
	imagePath textinput.Model

	confirm *confirmMsg
	status  string
	err     error

	width  int
	height int
}

func New(a *app.App) Model {
	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "/ "

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""

	body := textarea.New()
	body.Placeholder = "Start writing..."
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.Prompt = ""

	imagePath := textinput.New()
	imagePath.Placeholder = "Path to image"
	imagePath.Prompt = "image: "

	return Model{
		app:       a,
		worker:    newWorker(),
		now:       time.Now,
		search:    search,
		title:     title,
		body:      body,
		imagePath: imagePath,
		width:     100,
		height:    30,
	}
}

func (m Model) Init() tea.Cmd {
	m.do(m.fetchView)
	return tea.Batch(m.waitForChange(), m.worker.next())
}

func (m Model) do(o op) {
	m.worker.submit(o)
}

func (m Model) fetchView() tea.Msg {
	v, err := m.app.View()
	return viewMsg{view: v, err: err}
}

func (m Model) waitForChange() tea.Cmd {
	changes := m.app.Changes()
	return func() tea.Msg {
		<-changes
		return changedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case changedMsg:
		m.do(m.fetchView)
		return m, m.waitForChange()

	case viewMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.apply(msg.view)
		}
		return m, m.worker.next()

	case statusMsg:
		m.status, m.err = msg.text, msg.err
		if msg.resync {
			m.forceSync = true
			m.do(m.fetchView)
		}
		return m, m.worker.next()

	case confirmMsg:
		m.confirm = &msg
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// apply takes a snapshot and reloads the editor inputs when the selection
// changed, so typing is never overwritten by an older echo.
func (m *Model) apply(v app.View) {
	m.view = v
	if m.focus != focusSearch {
		m.search.SetValue(v.Query)
	}

	if !v.HasSelection {
		m.bound, m.boundID = false, 0
		m.title.SetValue("")
		m.body.SetValue("")
		m.clampCursor()
		return
	}
	if !m.bound || v.Selected.ID != m.boundID || m.forceSync {
		m.title.SetValue(v.Title)
		m.body.SetValue(v.Content)
		m.bound, m.boundID, m.forceSync = true, v.Selected.ID, false
		for i, n := range v.Notes {
			if n.ID == v.Selected.ID {
				m.cursor = i
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.view.Notes) {
		m.cursor = len(m.view.Notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.view.Fault != nil {
		switch key {
		case "r":
			m.do(m.reload)
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.confirm != nil {
		switch key {
		case "y", "Y":
			m.confirm.reply <- true
			m.confirm = nil
		case "n", "N", "esc":
			m.confirm.reply <- false
			m.confirm = nil
		}
		return m, nil
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+n":
		m.do(m.create)
		return m, m.setFocus(focusTitle)
	case "ctrl+d":
		m.do(m.deleteSelected)
		return m, nil
	case "ctrl+o":
		if m.bound {
			m.imagePath.SetValue("")
			return m, m.setFocus(focusImagePath)
		}
		return m, nil
	case "ctrl+x":
		m.do(m.removeImage)
		return m, nil
	case "tab":
		return m, m.setFocus(m.nextFocus())
	case "esc":
		return m, m.setFocus(focusList)
	}

	switch m.focus {
	case focusList:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.view.Notes)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.view.Notes) {
				m.do(m.selectNote(m.view.Notes[m.cursor].ID))
			}
		case "/":
			return m, m.setFocus(focusSearch)
		case "q":
			return m, tea.Quit
		}
		return m, nil
	case focusImagePath:
		if key == "enter" {
			m.do(m.insertImage(strings.TrimSpace(m.imagePath.Value())))
			return m, m.setFocus(focusBody)
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and queues an edit when
// its value changed.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if v := m.search.Value(); v != before {
			m.do(m.setQuery(v))
		}
	case focusTitle:
		before := m.title.Value()
		m.title, cmd = m.title.Update(msg)
		if v := m.title.Value(); v != before && m.bound {
			m.do(m.setTitle(v))
		}
	case focusBody:
		before := m.body.Value()
		m.body, cmd = m.body.Update(msg)
		if v := m.body.Value(); v != before && m.bound {
			m.do(m.editContent(v))
		}
	case focusImagePath:
		m.imagePath, cmd = m.imagePath.Update(msg)
	}
	return m, cmd
}

func (m Model) nextFocus() focus {
	switch m.focus {
	case focusList:
		return focusSearch
	case focusSearch:
		if m.bound {
			return focusTitle
		}
		return focusList
	case focusTitle:
		return focusBody
	default:
		return focusList
	}
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.search.Blur()
	m.title.Blur()
	m.body.Blur()
	m.imagePath.Blur()
	switch f {
	case focusSearch:
		return m.search.Focus()
	case focusTitle:
		return m.title.Focus()
	case focusBody:
		return m.body.Focus()
	case focusImagePath:
		return m.imagePath.Focus()
	}
	return nil
}

func (m *Model) resize() {
	editorWidth := m.width - sidebarWidth - 6
	if editorWidth < 20 {
		editorWidth = 20
	}
	m.title.Width = editorWidth
	m.imagePath.Width = editorWidth - len(m.imagePath.Prompt)
	m.search.Width = sidebarWidth - 6
	m.body.SetWidth(editorWidth)
	bodyHeight := m.height - 9
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.body.SetHeight(bodyHeight)
}

// Operations. Each runs on the worker, in order.

func (m Model) create() tea.Msg {
	note, err := m.app.Create()
	if err != nil {
		return statusMsg{err: err}
	}
	return statusMsg{text: fmt.Sprintf("Created note %d", note.ID)}
}

func (m Model) deleteSelected() tea.Msg {
	if err := m.app.DeleteSelected(); err != nil {
		return statusMsg{err: err}
	}
	return statusMsg{text: "Deleted note"}
}

func (m Model) reload() tea.Msg {
	if err := m.app.Reload(); err != nil {
		return statusMsg{err: err}
	}
	return statusMsg{text: "Reloaded", resync: true}
}

func (m Model) selectNote(id int64) op {
	return func() tea.Msg {
		if err := m.app.Select(id); err != nil {
			return statusMsg{err: err}
		}
		return nil
	}
}

func (m Model) setQuery(q string) op {
	return func() tea.Msg {
		if err := m.app.SetQuery(q); err != nil {
			return statusMsg{err: err}
		}
		return nil
	}
}

func (m Model) setTitle(title string) op {
	return func() tea.Msg {
		if err := m.app.SetTitle(title); err != nil {
			return statusMsg{err: err}
		}
		return nil
	}
}

func (m Model) editContent(doc string) op {
	return func() tea.Msg {
		if err := m.app.EditContent(doc); err != nil {
			return statusMsg{err: err}
		}
		return nil
	}
}

func (m Model) insertImage(path string) op {
	return func() tea.Msg {
		if path == "" {
			return nil
		}
		res, err := models.ReadResource(path)
		if err != nil {
			return statusMsg{err: err}
		}
		if !res.IsImage() {
			return statusMsg{err: fmt.Errorf("%s is not an image (%s)", res.Filename, res.MimeType)}
		}
		if err := m.app.InsertImage(res.DataURL()); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Inserted " + res.Filename, resync: true}
	}
}

// removeImage removes the most recently added image after confirmation.
func (m Model) removeImage() tea.Msg {
	srcs, err := m.app.Images()
	if err != nil {
		return statusMsg{err: err}
	}
	if len(srcs) == 0 {
		return statusMsg{text: "No images in this note"}
	}
	removed, err := m.app.RemoveImage(srcs[len(srcs)-1])
	if err != nil {
		return statusMsg{err: err}
	}
	if !removed {
		return statusMsg{text: "Image kept"}
	}
	return statusMsg{text: "Image removed", resync: true}
}

// Rendering.

func (m Model) View() string {
	if m.view.Fault != nil {
		return m.faultView()
	}

	left := m.sidebarView()
	var right string
	if m.confirm != nil {
		right = dialogStyle.Render(m.confirm.prompt + "\n\n" + mutedStyle.Render("y: yes   n: no"))
	} else {
		right = m.editorView()
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.footerView())
}

func (m Model) sidebarView() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Notes") + "\n")
	sb.WriteString(m.search.View() + "\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("%d %s", len(m.view.Notes), ui.PluralizeNotes(len(m.view.Notes)))) + "\n\n")

	if len(m.view.Notes) == 0 {
		sb.WriteString(mutedStyle.Render(ui.NoNotesLabel))
	}
	now := m.now()
	for i, n := range m.view.Notes {
		preview := ui.Preview(n.Content, sidebarWidth-6)
		if preview == "" {
			preview = ui.NoContentLabel
		}
		title := ui.DisplayTitle(n)
		if m.focus == focusList && i == m.cursor {
			title = "> " + title
		}
		entry := fmt.Sprintf("%s\n%s\n%s",
			headerStyle.Render(title),
			mutedStyle.Render(preview),
			mutedStyle.Render(ui.RelativeDate(n.UpdatedAt, now)))
		if m.view.HasSelection && n.ID == m.view.Selected.ID {
			sb.WriteString(activeItem.Render(entry))
		} else {
			sb.WriteString(itemStyle.Render(entry))
		}
		sb.WriteString("\n")
	}

	style := paneStyle
	if m.focus == focusList || m.focus == focusSearch {
		style = focusedPane
	}
	return style.Width(sidebarWidth).Height(m.height - 3).Render(sb.String())
}

func (m Model) editorView() string {
	width := m.width - sidebarWidth - 4
	style := paneStyle
	if m.focus == focusTitle || m.focus == focusBody || m.focus == focusImagePath {
		style = focusedPane
	}

	if !m.view.HasSelection {
		return style.Width(width).Height(m.height - 3).Render(mutedStyle.Render("Select a note or press ctrl+n to create one"))
	}

	var sb strings.Builder
	sb.WriteString(activeStyle.Render(m.title.View()) + "\n")
	sb.WriteString(mutedStyle.Render(strings.Repeat("─", max(width-4, 1))) + "\n")
	sb.WriteString(m.body.View() + "\n")
	if m.focus == focusImagePath {
		sb.WriteString(m.imagePath.View() + "\n")
	}
	if m.view.Editing {
		sb.WriteString(savingStyle.Render("Saving..."))
	} else {
		sb.WriteString(savedStyle.Render("Saved"))
	}
	return style.Width(width).Height(m.height - 3).Render(sb.String())
}

func (m Model) footerView() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return mutedStyle.Render("ctrl+n new · ctrl+d delete · tab focus · enter open · ctrl+o add image · ctrl+x remove image · ctrl+c quit")
}

func (m Model) faultView() string {
	msg := m.view.Fault.Error()
	if errors.Is(m.view.Fault, app.ErrFault) {
		msg = strings.TrimPrefix(msg, app.ErrFault.Error()+": ")
	}
	body := faultTitle.Render("Something went wrong") + "\n\n" +
		mutedStyle.Render(msg) + "\n\n" +
		"Press r to reload or q to quit."
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialogStyle.Render(body))
}

// Run starts the program on the terminal and blocks until it exits.
func Run(a *app.App, confirmer *Confirmer) error {
	m := New(a)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if confirmer != nil {
		confirmer.Attach(p.Send)
		defer confirmer.Detach()
	}
	_, err := p.Run()
	m.worker.stop()
	return err
}
