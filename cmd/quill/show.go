// ABOUTME: Show command for displaying a single note.
// ABOUTME: Renders the note text with glamour and lists embedded images.

package main

import (
	"fmt"

	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a note",
	Long:  `Display a note's full content with rendered text and its embedded images.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := openApp(nil)
		if err != nil {
			return err
		}
		if err := a.Select(id); err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		note, err := a.Get(id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		images, err := a.Images()
		if err != nil {
			return fmt.Errorf("failed to read images: %w", err)
		}

		fmt.Print(ui.FormatNoteHeader(note, len(images)))

		content, _ := ui.FormatNoteContent(note.Content)
		fmt.Print(content)

		if len(images) > 0 {
			fmt.Print(ui.FormatImageList(images))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
