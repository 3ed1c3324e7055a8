// ABOUTME: TUI command for the interactive editor.
// ABOUTME: Sends logs to a file so they do not draw over the screen.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/quill/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive editor",
	Long: `Open a two-pane editor: notes and search on the left, the selected note on the right.

Edits save automatically after a short pause.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.ResolvedDataDir()
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		logFile, err := os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = logFile.Close() }()

		logger, err = newLogger(logFile, cfg.LogLevel)
		if err != nil {
			return err
		}

		confirmer := tui.NewConfirmer()
		a, err := openApp(confirmer)
		if err != nil {
			return err
		}
		if err := tui.Run(a, confirmer); err != nil {
			return err
		}
		return closeAll()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
