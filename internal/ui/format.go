// ABOUTME: Terminal UI formatting for quill output.
// ABOUTME: Uses glamour for rendering, bluemonday for markup stripping and fatih/color for styling.

package ui

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/quill/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const (
	UntitledLabel  = "Untitled"
	NoContentLabel = "No content"
	NoNotesLabel   = "No notes found."
	previewLength  = 80
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()

	strip = bluemonday.StrictPolicy()

	// Closing block tags and line breaks become newlines before stripping.
	blockBreak = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|blockquote|pre)>|<br\s*/?>`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
	spaceRuns  = regexp.MustCompile(`\s+`)
)

// PlainText converts note content to text, keeping paragraph breaks.
func PlainText(content string) string {
	withBreaks := blockBreak.ReplaceAllString(content, "$0\n\n")
	text := html.UnescapeString(strip.Sanitize(withBreaks))
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Preview returns a single-line excerpt of the content.
func Preview(content string, max int) string {
	text := strings.TrimSpace(spaceRuns.ReplaceAllString(PlainText(content), " "))
	runes := []rune(text)
	if max > 0 && len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return text
}

// DisplayTitle returns the title or the untitled placeholder.
func DisplayTitle(note models.Note) string {
	if strings.TrimSpace(note.Title) == "" {
		return UntitledLabel
	}
	return note.Title
}

// RelativeDate describes t relative to now in whole days.
func RelativeDate(t, now time.Time) string {
	days := int(now.Sub(t) / (24 * time.Hour))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Local().Format("2006-01-02")
	}
}

// PluralizeNotes returns the noun for count notes.
func PluralizeNotes(count int) string {
	if count == 1 {
		return "note"
	}
	return "notes"
}

// FormatCount renders "N notes".
func FormatCount(count int) string {
	return faint(fmt.Sprintf("%d %s", count, PluralizeNotes(count)))
}

func FormatNoteListItem(note models.Note, active bool, now time.Time) string {
	var sb strings.Builder

	marker := " "
	title := bold(DisplayTitle(note))
	if active {
		marker = cyan(">")
		title = cyan(title)
	}
	sb.WriteString(fmt.Sprintf("%s %s  %s\n", marker, faint(fmt.Sprintf("%d", note.ID)), title))

	preview := Preview(note.Content, previewLength)
	if preview == "" {
		preview = NoContentLabel
	}
	sb.WriteString(fmt.Sprintf("    %s\n", faint(preview)))
	sb.WriteString(fmt.Sprintf("    %s %s\n", faint("Updated:"), faint(RelativeDate(note.UpdatedAt, now))))

	return sb.String()
}

func FormatNoteContent(content string) (string, error) {
	text := PlainText(content)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return text, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(text)
	if err != nil {
		// Fallback to raw content if rendering fails
		return text, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note models.Note, images int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(DisplayTitle(note))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(fmt.Sprintf("%d", note.ID))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Local().Format("2006-01-02 15:04"))))
	if images > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Images:"), cyan(fmt.Sprintf("%d", images))))
	}

	sb.WriteString(Separator())
	return sb.String()
}

// FormatImageList lists image sources, shortening data URLs.
func FormatImageList(srcs []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\n%s\n", bold("Images:")))
	for i, src := range srcs {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(fmt.Sprintf("%d", i+1)), ShortSource(src)))
	}

	return sb.String()
}

// ShortSource abbreviates long image sources for display.
func ShortSource(src string) string {
	if strings.HasPrefix(src, "data:") {
		if i := strings.Index(src, ","); i > 0 {
			return fmt.Sprintf("%s %s", src[:i], faint(fmt.Sprintf("(%d bytes)", len(src)-i-1)))
		}
	}
	if len(src) > 60 {
		return src[:57] + "..."
	}
	return src
}

// FormatFault is shown when the app hit an unrecovered failure.
func FormatFault(err error) string {
	var sb strings.Builder
	sb.WriteString(Error("Something went wrong") + "\n")
	if err != nil {
		sb.WriteString(faint(err.Error()) + "\n")
	}
	sb.WriteString(faint("Run the command again to reload your notes.") + "\n")
	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}
