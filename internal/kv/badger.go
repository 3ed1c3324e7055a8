// ABOUTME: Badger-backed Store using short-lived transactional access.
// ABOUTME: The database is opened per operation so several processes can share it.

package kv

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// Badger holds configuration for KV operations. It does not keep the
// database open between calls.
type Badger struct {
	dir    string
	logger *slog.Logger
}

// OpenBadger prepares a Badger store in dir, creating the directory and
// verifying that the database can be opened.
func OpenBadger(dir string, logger *slog.Logger) (*Badger, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	b := &Badger{dir: dir, logger: logger}
	if err := b.do(false, func(*badger.Txn) error { return nil }); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Badger) do(write bool, fn func(txn *badger.Txn) error) error {
	opts := badger.DefaultOptions(b.dir).WithLogger(badgerLogger{b.logger})
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open badger: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			b.logger.Warn("kv: close badger", "error", cerr)
		}
	}()
	if write {
		return db.Update(fn)
	}
	return db.View(fn)
}

// Get retrieves a value by key.
func (b *Badger) Get(key string) ([]byte, error) {
	var val []byte
	err := b.do(false, func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

// Set stores a value with the given key.
func (b *Badger) Set(key string, value []byte) error {
	return b.do(true, func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Delete removes a key. Deleting a missing key is not an error.
func (b *Badger) Delete(key string) error {
	return b.do(true, func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Close is a no-op; connections are closed after each operation.
func (b *Badger) Close() error {
	return nil
}

// badgerLogger routes badger's printf-style logging into slog. Badger is
// chatty at info level, so info drops to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf("badger: "+format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf("badger: "+format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf("badger: "+format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf("badger: "+format, args...))
}
