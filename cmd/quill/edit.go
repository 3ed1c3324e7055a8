// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Takes new title or content from flags, or opens $EDITOR.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note",
	Long:  `Change a note's title or content. Without flags the content opens in $EDITOR.`,
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

		titleSet := cmd.Flags().Changed("title")
		contentSet := cmd.Flags().Changed("content")
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")

		if !titleSet && !contentSet {
			edited, err := openEditor(note.Content)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			if edited == note.Content {
				fmt.Println("No changes made.")
				return nil
			}
			content, contentSet = edited, true
		}

		if titleSet {
			if err := a.SetTitle(title); err != nil {
				return fmt.Errorf("failed to update title: %w", err)
			}
		}
		if contentSet {
			if err := a.EditContent(toDocument(content)); err != nil {
				return fmt.Errorf("failed to update content: %w", err)
			}
		}
		if err := a.Flush(); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		if err := a.WriteErr(); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("note kept in memory only: %v", err)))
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %d", note.ID)))
		return nil
	},
}

// parseID reads a note id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("content", "", "new content")
	rootCmd.AddCommand(editCmd)
}
