// ABOUTME: Loads and saves the whole note collection under one storage key.
// ABOUTME: Falls back to the sample collection when nothing valid is stored.

package persist

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/harper/quill/internal/clock"
	"github.com/harper/quill/internal/codec"
	"github.com/harper/quill/internal/kv"
	"github.com/harper/quill/internal/models"
)

// DefaultKey is the storage key holding the serialized collection.
const DefaultKey = "notes-app-data"

// ErrWrite wraps failures to store the collection.
var ErrWrite = errors.New("persist notes")

type Gateway struct {
	store  kv.Store
	key    string
	clock  clock.Clock
	logger *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(g *Gateway) {
		if key != "" {
			g.key = key
		}
	}
}

// WithClock sets the time source used to date the sample collection.
func WithClock(c clock.Clock) Option {
	return func(g *Gateway) {
		g.clock = c
	}
}

// WithLogger sets the logger for fallback and failure reports.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGateway(store kv.Store, opts ...Option) *Gateway {
	g := &Gateway{
		store:  store,
		key:    DefaultKey,
		clock:  clock.Real(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Key returns the storage key in use.
func (g *Gateway) Key() string {
	return g.key
}

// Load returns the stored collection. When the key is absent, unreadable or
// holds invalid data it returns the sample collection and seeded=true.
// Load never fails.
func (g *Gateway) Load() (notes []models.Note, seeded bool) {
	data, err := g.store.Get(g.key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		g.logger.Info("persist: no stored notes, using sample notes", "key", g.key)
		return g.seed(), true
	case err != nil:
		g.logger.Error("persist: read failed, using sample notes", "key", g.key, "error", err)
		return g.seed(), true
	}

	notes, err = codec.DecodeNotes(data)
	if err != nil {
		g.logger.Warn("persist: stored notes are invalid, using sample notes", "key", g.key, "error", err)
		return g.seed(), true
	}
	g.logger.Debug("persist: loaded notes", "key", g.key, "count", len(notes))
	return notes, false
}

// Save writes the whole collection.
func (g *Gateway) Save(notes []models.Note) error {
	data, err := codec.EncodeNotes(notes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := g.store.Set(g.key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Reset removes the stored collection so the next Load seeds.
func (g *Gateway) Reset() error {
	if err := g.store.Delete(g.key); err != nil {
		return fmt.Errorf("reset notes: %w", err)
	}
	return nil
}

func (g *Gateway) seed() []models.Note {
	return models.DefaultSeed(g.clock.Now())
}
