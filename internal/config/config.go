// ABOUTME: Configuration for storage backend, editing behaviour and logging
// ABOUTME: Handles XDG config and data paths with a JSON config file

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/harper/quill/internal/kv"
	"github.com/harper/quill/internal/persist"
	"github.com/harper/quill/internal/session"
)

// Config holds quill configuration.
type Config struct {
	// Backend is the storage backend: badger, sqlite or memory (default: badger)
	Backend string `json:"backend"`

	// DataDir overrides the data directory (default: $XDG_DATA_HOME/quill)
	DataDir string `json:"data_dir,omitempty"`

	// StorageKey is the key holding the note collection (default: notes-app-data)
	StorageKey string `json:"storage_key"`

	// DebounceMS is the quiet period before an edit is saved (default: 500)
	DebounceMS int `json:"debounce_ms"`

	// FlushOnSwitch saves a pending edit when switching notes instead of dropping it (default: true)
	FlushOnSwitch bool `json:"flush_on_switch"`

	// QuotaBytes limits the stored collection size, 0 for no limit
	QuotaBytes int `json:"quota_bytes,omitempty"`

	// LogLevel is debug, info, warn or error (default: warn)
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:       kv.BackendBadger,
		StorageKey:    persist.DefaultKey,
		DebounceMS:    int(session.DefaultDelay / time.Millisecond),
		FlushOnSwitch: true,
		LogLevel:      "warn",
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quill")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// DefaultDataDir returns the data directory path.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quill")
}

// LoadConfig loads configuration from disk, returns defaults if not found.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigPath(), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes configuration to disk.
func SaveConfig(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}

// ConfigExists returns true if a config file exists.
func ConfigExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Validate rejects values the app cannot run with.
func (c *Config) Validate() error {
	if c.Backend != "" && !slices.Contains(kv.Backends(), c.Backend) {
		return fmt.Errorf("%w: %q", kv.ErrUnknownBackend, c.Backend)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMS)
	}
	if c.QuotaBytes < 0 {
		return fmt.Errorf("quota_bytes must not be negative, got %d", c.QuotaBytes)
	}
	return nil
}

// ResolvedDataDir returns DataDir or the XDG default.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DefaultDataDir()
}

// Delay returns the debounce interval, falling back to the default.
func (c *Config) Delay() time.Duration {
	if c.DebounceMS <= 0 {
		return session.DefaultDelay
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}
