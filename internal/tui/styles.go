// ABOUTME: Lipgloss styles for the two-pane note editor.
// ABOUTME: Sidebar list, editor pane, dialog and status line.

package tui

import "github.com/charmbracelet/lipgloss"

const sidebarWidth = 34

var (
	accent = lipgloss.Color("#007AFF")
	muted  = lipgloss.Color("241")
	danger = lipgloss.Color("196")

	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	activeStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	itemStyle   = lipgloss.NewStyle().PaddingLeft(1)
	activeItem  = lipgloss.NewStyle().PaddingLeft(1).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(accent)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1)
	focusedPane = paneStyle.BorderForeground(accent)
	errorStyle  = lipgloss.NewStyle().Foreground(danger)
	dialogStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(1, 3)
	faultTitle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(muted).Italic(true)
	savingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	savedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)
