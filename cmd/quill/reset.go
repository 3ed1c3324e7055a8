// ABOUTME: Reset command that removes the stored note collection.
// ABOUTME: The next run starts again from the sample notes.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all notes",
	Long:  `Remove the stored note collection. The next command starts from the sample notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		g, err := openGateway()
		if err != nil {
			return err
		}

		if !force {
			fmt.Printf("Delete every note stored under %q? [y/N] ", g.Key())
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := g.Reset(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Notes reset"))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(resetCmd)
}
