// ABOUTME: Root command with persistent flags, logging and lazy app wiring.
// ABOUTME: Commands open storage and the app on demand; Execute closes them.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/harper/quill/internal/app"
	"github.com/harper/quill/internal/bridge"
	"github.com/harper/quill/internal/config"
	"github.com/harper/quill/internal/kv"
	"github.com/harper/quill/internal/persist"
	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	logger  *slog.Logger
	store   kv.Store
	gateway *persist.Gateway
	quill   *app.App
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "A local notes app with autosave",
	Long: `Quill keeps a collection of rich-text notes in local storage.

Edits are saved automatically after a short pause. Notes can be searched,
exported, imported and edited from the command line, a terminal UI or an
MCP client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		if err := applyFlags(cmd); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if logger == nil {
			logger, err = newLogger(os.Stderr, cfg.LogLevel)
			if err != nil {
				return err
			}
		}
		return nil
	},
}

// Execute runs the CLI and releases storage afterwards.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeAll(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		if errors.Is(err, app.ErrFault) {
			fmt.Fprint(os.Stderr, ui.FormatFault(err))
		} else {
			fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		}
	}
	return err
}

func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("data") {
		cfg.DataDir, _ = flags.GetString("data")
	}
	if flags.Changed("key") {
		cfg.StorageKey, _ = flags.GetString("key")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	return nil
}

// newLogger builds the slog logger backed by charm's handler.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl,
		Prefix:          "quill",
		ReportTimestamp: true,
	})
	return slog.New(handler), nil
}

// openGateway opens the configured backend once per process.
func openGateway() (*persist.Gateway, error) {
	if gateway != nil {
		return gateway, nil
	}
	dir := cfg.ResolvedDataDir()
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s, err := kv.Open(cfg.Backend, dir, logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	store = kv.WithQuota(s, cfg.QuotaBytes)
	gateway = persist.NewGateway(store,
		persist.WithKey(cfg.StorageKey),
		persist.WithLogger(logger),
	)
	logger.Debug("storage opened", "backend", cfg.Backend, "dir", dir, "key", gateway.Key())
	return gateway, nil
}

// openApp loads the collection and starts the app. confirmer answers image
// removal prompts; nil declines them.
func openApp(confirmer bridge.Confirmer) (*app.App, error) {
	if quill != nil {
		return quill, nil
	}
	g, err := openGateway()
	if err != nil {
		return nil, err
	}
	quill = app.New(g,
		app.WithLogger(logger),
		app.WithDelay(cfg.Delay()),
		app.WithFlushOnSwitch(cfg.FlushOnSwitch),
		app.WithConfirmer(confirmer),
	)
	return quill, nil
}

// promptConfirmer asks on the terminal unless force is set.
func promptConfirmer(force bool) bridge.Confirmer {
	if force {
		return bridge.Always(true)
	}
	return ui.NewPromptConfirmer(os.Stdin, os.Stdout)
}

func closeAll() error {
	var errs []error
	if quill != nil {
		if err := quill.Close(); err != nil {
			errs = append(errs, err)
		}
		// Write failures are reported by the commands that edit; here they
		// only reach the log.
		if err := quill.WriteErr(); err != nil {
			logger.Debug("notes not saved", "error", err)
		}
		quill = nil
	}
	if store != nil {
		if err := store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
		store = nil
		gateway = nil
	}
	return errors.Join(errs...)
}

func init() {
	rootCmd.PersistentFlags().String("backend", "", "storage backend (badger|sqlite|memory)")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("key", "", "storage key for the note collection")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
}
