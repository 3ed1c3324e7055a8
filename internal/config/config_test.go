// ABOUTME: Tests for configuration loading and XDG path handling.
// ABOUTME: Each test points XDG directories at a temp dir.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/quill/internal/kv"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, ConfigExists())
	assert.Equal(t, 500*time.Millisecond, cfg.Delay())
	assert.True(t, cfg.FlushOnSwitch)
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.Backend = kv.BackendSQLite
	cfg.DebounceMS = 250
	cfg.FlushOnSwitch = false
	require.NoError(t, SaveConfig(cfg))

	assert.True(t, ConfigExists())
	assert.Equal(t, filepath.Join(dir, "quill", "config.json"), ConfigPath())

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 250*time.Millisecond, loaded.Delay())
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.MkdirAll(ConfigDir(), 0750))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte(`{"backend":"memory"}`), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, kv.BackendMemory, cfg.Backend)
	assert.Equal(t, 500, cfg.DebounceMS)
	assert.Equal(t, "notes-app-data", cfg.StorageKey)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.MkdirAll(ConfigDir(), 0750))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte(`{"backend":"etcd"}`), 0600))

	_, err := LoadConfig()
	assert.ErrorIs(t, err, kv.ErrUnknownBackend)
}

func TestLoadConfigRejectsBadJSON(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.MkdirAll(ConfigDir(), 0750))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte(`{`), 0600))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestResolvedDataDir(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(dataHome, "quill"), cfg.ResolvedDataDir())

	cfg.DataDir = "/elsewhere"
	assert.Equal(t, "/elsewhere", cfg.ResolvedDataDir())
}
