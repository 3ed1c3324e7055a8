// ABOUTME: Key-value substrate used to persist the note collection.
// ABOUTME: Defines the Store contract, sentinel errors and backend selection.

package kv

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by Set when the value does not fit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store reads and writes opaque values by key. Any call may fail.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open returns the named backend rooted at dir.
func Open(backend, dir string, logger *slog.Logger) (Store, error) {
	switch backend {
	case BackendBadger, "":
		return OpenBadger(filepath.Join(dir, "badger"), logger)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "quill.db"))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendBadger, BackendSQLite, BackendMemory}
}
