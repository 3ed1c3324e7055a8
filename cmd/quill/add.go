// ABOUTME: Add command for creating new notes.
// ABOUTME: Supports inline content, file input, or $EDITOR.

package main

import (
	"fmt"
	"html"
	"os"
	"os/exec"
	"strings"

	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new note",
	Long:  `Create a new note with the given title. Content can be provided via --content, --file, or $EDITOR.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")
		emptyFlag, _ := cmd.Flags().GetBool("empty")

		var content string
		var err error

		switch {
		case contentFlag != "":
			content = contentFlag
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			content = string(data)
		case emptyFlag:
		default:
			content, err = openEditor("")
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		a, err := openApp(nil)
		if err != nil {
			return err
		}

		note, err := a.Create()
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		if err := a.SetTitle(title); err != nil {
			return fmt.Errorf("failed to set title: %w", err)
		}
		if strings.TrimSpace(content) != "" {
			if err := a.EditContent(toDocument(content)); err != nil {
				return fmt.Errorf("failed to set content: %w", err)
			}
		}
		if err := a.Flush(); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		if err := a.WriteErr(); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("note kept in memory only: %v", err)))
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created note %d", note.ID)))
		return nil
	},
}

// toDocument turns plain text into paragraphs. Input that already looks
// like markup is used as is.
func toDocument(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "<") {
		return text
	}
	var sb strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(line)
		}
		sb.WriteString("<p>" + strings.Join(lines, "<br>") + "</p>")
	}
	return sb.String()
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "quill-*.html")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func init() {
	addCmd.Flags().String("content", "", "note content (inline)")
	addCmd.Flags().String("file", "", "read content from file")
	addCmd.Flags().Bool("empty", false, "create the note without content")
	rootCmd.AddCommand(addCmd)
}
