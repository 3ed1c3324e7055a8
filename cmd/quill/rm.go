// ABOUTME: Remove command for deleting notes.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a note",
	Long:  `Delete a note and its embedded images.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		a, err := openApp(nil)
		if err != nil {
			return err
		}
		note, err := a.Get(id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		if !force {
			fmt.Printf("Delete note %q (%d)? [y/N] ", ui.DisplayTitle(note), note.ID)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := a.Delete(id); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		if err := a.Flush(); err != nil {
			return fmt.Errorf("failed to save notes: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted note %d", note.ID)))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
