// ABOUTME: Export command for backing up notes.
// ABOUTME: Writes the stored JSON collection or markdown files with YAML front matter.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/quill/internal/codec"
	"github.com/harper/quill/internal/models"
	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// frontMatter is the YAML header of an exported markdown note.
type frontMatter struct {
	ID      int64     `yaml:"id"`
	Title   string    `yaml:"title"`
	Updated time.Time `yaml:"updated"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export notes as a JSON collection (the storage format) or as markdown files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		noteFlag, _ := cmd.Flags().GetInt64("note")

		a, err := openApp(nil)
		if err != nil {
			return err
		}

		var notes []models.Note
		if noteFlag != 0 {
			note, err := a.Get(noteFlag)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			notes = append(notes, note)
		} else {
			notes, err = a.Notes()
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}
		}

		switch format {
		case "json":
			return exportJSON(notes, outputPath)
		case "md":
			return exportMarkdown(notes, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func exportJSON(notes []models.Note, outputPath string) error {
	data, err := codec.EncodeNotes(notes)
	if err != nil {
		return err
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("Exported %d %s to %s", len(notes), ui.PluralizeNotes(len(notes)), outputPath)))
	return nil
}

func exportMarkdown(notes []models.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for _, n := range notes {
		fm := frontMatter{
			ID:      n.ID,
			Title:   n.Title,
			Updated: n.UpdatedAt.UTC(),
		}

		var sb strings.Builder
		sb.WriteString("---\n")
		header, err := yaml.Marshal(fm)
		if err != nil {
			return fmt.Errorf("encode front matter: %w", err)
		}
		sb.Write(header)
		sb.WriteString("---\n\n")
		sb.WriteString(n.Content)
		sb.WriteString("\n")

		filename := fmt.Sprintf("%d-%s.md", n.ID, sanitizeFilename(ui.DisplayTitle(n)))
		if err := os.WriteFile(filepath.Join(outputDir, filename), []byte(sb.String()), 0644); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d %s to %s", len(notes), ui.PluralizeNotes(len(notes)), outputDir)))
	return nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = replacer.Replace(name)
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().Int64P("note", "n", 0, "single note ID to export")
	rootCmd.AddCommand(exportCmd)
}
