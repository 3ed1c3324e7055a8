// ABOUTME: Image subcommands for embedding pictures in notes.
// ABOUTME: Images are stored inline as data URLs inside the note document.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/harper/quill/internal/models"
	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage note images",
	Long: `Add, list and remove images embedded in a note.

Examples:
  quill image add 1 ./diagram.png
  quill image ls 1
  quill image rm 1 1`,
}

var imageAddCmd = &cobra.Command{
	Use:   "add <id> <file>",
	Short: "Embed an image file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		res, err := models.ReadResource(args[1])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		if !res.IsImage() {
			return fmt.Errorf("%s is not an image (%s)", res.Filename, res.MimeType)
		}

		a, err := openApp(nil)
		if err != nil {
			return err
		}
		if err := a.Select(id); err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		if err := a.InsertImage(res.DataURL()); err != nil {
			return fmt.Errorf("failed to insert image: %w", err)
		}
		if err := a.Flush(); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		if err := a.WriteErr(); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("note kept in memory only: %v", err)))
		}

		fmt.Println(ui.Success(fmt.Sprintf("Added %s to note %d", res.Filename, id)))
		return nil
	},
}

var imageListCmd = &cobra.Command{
	Use:     "ls <id>",
	Aliases: []string{"list"},
	Short:   "List embedded images",
	Args:    cobra.ExactArgs(1),
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
		srcs, err := a.Images()
		if err != nil {
			return fmt.Errorf("failed to read images: %w", err)
		}
		if len(srcs) == 0 {
			fmt.Println("No images.")
			return nil
		}
		fmt.Print(ui.FormatImageList(srcs))
		return nil
	},
}

var imageRmCmd = &cobra.Command{
	Use:   "rm <id> <n|src>",
	Short: "Remove an embedded image",
	Long:  `Remove an image by its position from 'image ls' or by its exact source. Asks for confirmation unless --force is set.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		a, err := openApp(promptConfirmer(force))
		if err != nil {
			return err
		}
		if err := a.Select(id); err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		srcs, err := a.Images()
		if err != nil {
			return fmt.Errorf("failed to read images: %w", err)
		}
		src := resolveImage(srcs, args[1])

		removed, err := a.RemoveImage(src)
		if err != nil {
			return fmt.Errorf("failed to remove image: %w", err)
		}
		if !removed {
			fmt.Println("Cancelled.")
			return nil
		}
		if err := a.Flush(); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Removed image from note %d", id)))
		return nil
	},
}

// resolveImage maps a 1-based position to its source. Anything else is
// taken as the source itself.
func resolveImage(srcs []string, arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(srcs) {
		return srcs[n-1]
	}
	return arg
}

func init() {
	imageRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	imageCmd.AddCommand(imageAddCmd)
	imageCmd.AddCommand(imageListCmd)
	imageCmd.AddCommand(imageRmCmd)
	rootCmd.AddCommand(imageCmd)
}
