// ABOUTME: List command for displaying notes.
// ABOUTME: Supports search filtering and marks the selected note.

package main

import (
	"fmt"
	"time"

	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List notes newest first, optionally filtered by a case-insensitive search over titles and content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		a, err := openApp(nil)
		if err != nil {
			return err
		}
		if searchFlag != "" {
			if err := a.SetQuery(searchFlag); err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
		}

		v, err := a.View()
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		if v.Fault != nil {
			return v.Fault
		}

		if len(v.Notes) == 0 {
			fmt.Println(ui.NoNotesLabel)
			return nil
		}

		fmt.Println(ui.FormatCount(len(v.Notes)))
		now := time.Now()
		for i, note := range v.Notes {
			if limitFlag > 0 && i >= limitFlag {
				fmt.Printf("  ... %d more\n", len(v.Notes)-limitFlag)
				break
			}
			active := v.HasSelection && note.ID == v.Selected.ID
			fmt.Print(ui.FormatNoteListItem(note, active, now))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "search query")
	listCmd.Flags().IntP("limit", "n", 0, "maximum number of notes to show (0 for all)")
	rootCmd.AddCommand(listCmd)
}
