// ABOUTME: Import command for restoring notes from backup.
// ABOUTME: Accepts a JSON collection, a markdown file or a directory of markdown files.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/quill/internal/codec"
	"github.com/harper/quill/internal/models"
	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long: `Import notes from a JSON collection or markdown files. Imported notes are
added to the existing ones; ids that already exist are replaced with new ones.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		var notes []models.Note
		switch {
		case info.IsDir():
			notes, err = readMarkdownDir(path)
		case strings.HasSuffix(path, ".json"):
			notes, err = readJSON(path)
		default:
			var note models.Note
			note, err = readMarkdownFile(path)
			notes = []models.Note{note}
		}
		if err != nil {
			return err
		}

		a, err := openApp(nil)
		if err != nil {
			return err
		}
		count, err := a.Import(notes)
		if err != nil {
			return fmt.Errorf("failed to import notes: %w", err)
		}
		if err := a.Flush(); err != nil {
			return fmt.Errorf("failed to save notes: %w", err)
		}
		if err := a.WriteErr(); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("notes kept in memory only: %v", err)))
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %d %s", count, ui.PluralizeNotes(count))))
		return nil
	},
}

func readJSON(path string) ([]models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, err
	}
	notes, err := codec.DecodeNotes(data)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return notes, nil
}

func readMarkdownDir(dir string) ([]models.Note, error) {
	var notes []models.Note

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		note, err := readMarkdownFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("failed to import %s: %v", path, err)))
			return nil
		}
		notes = append(notes, note)
		return nil
	})

	return notes, err
}

func readMarkdownFile(path string) (models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return models.Note{}, err
	}

	content := string(data)
	var fm frontMatter

	if strings.HasPrefix(content, "---\n") {
		parts := strings.SplitN(content, "---\n", 3)
		if len(parts) >= 3 {
			if err := yaml.Unmarshal([]byte(parts[1]), &fm); err == nil {
				content = parts[2]
			}
		}
	}

	if fm.Title == "" {
		fm.Title = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	return models.Note{
		ID:        fm.ID,
		Title:     fm.Title,
		Content:   toDocument(content),
		UpdatedAt: fm.Updated,
	}, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
