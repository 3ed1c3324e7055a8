// ABOUTME: Adapter between the editing session and a rich-text engine.
// ABOUTME: Pushes authoritative documents and forwards user edits back.

package bridge

import (
	"fmt"
	"log/slog"
)

// RemovePrompt is the question asked before an image is removed.
const RemovePrompt = "Remove this image?"

// Engine is a rich-text editor holding one document.
type Engine interface {
	// Document returns the current serialized document.
	Document() string
	// SetDocument replaces the document without reporting a change.
	SetDocument(doc string)
	// OnChange registers the callback invoked after user edits.
	OnChange(fn func(doc string))
	// InsertResource embeds a resource reference at the insertion point.
	InsertResource(ref string) error
	// RemoveResource deletes the resource whose source equals locator.
	RemoveResource(locator string) error
}

// Confirmer asks the user a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always returns a Confirmer that answers yes or no without asking.
func Always(answer bool) Confirmer {
	return ConfirmFunc(func(string) bool { return answer })
}

type Bridge struct {
	engine    Engine
	confirmer Confirmer
	sink      func(doc string)
	logger    *slog.Logger
	pushing   bool
}

// New connects engine to sink. Edits made in the engine reach sink
// verbatim; documents pushed through the bridge do not.
func New(engine Engine, confirmer Confirmer, sink func(doc string), logger *slog.Logger) *Bridge {
	if confirmer == nil {
		confirmer = Always(false)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Bridge{
		engine:    engine,
		confirmer: confirmer,
		sink:      sink,
		logger:    logger,
	}
	engine.OnChange(b.changed)
	return b
}

func (b *Bridge) changed(doc string) {
	if b.pushing {
		return
	}
	if b.sink != nil {
		b.sink(doc)
	}
}

// Push makes doc the engine's document. It does nothing when the engine
// already holds an equal document and reports whether it pushed.
func (b *Bridge) Push(doc string) bool {
	if b.engine.Document() == doc {
		return false
	}
	b.pushing = true
	defer func() { b.pushing = false }()
	b.engine.SetDocument(doc)
	return true
}

// Document returns the engine's current document.
func (b *Bridge) Document() string {
	return b.engine.Document()
}

// InsertResource embeds ref into the document.
func (b *Bridge) InsertResource(ref string) error {
	if err := b.engine.InsertResource(ref); err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// RemoveResource asks for confirmation and then removes the resource. It
// reports false when the user declined.
func (b *Bridge) RemoveResource(locator string) (bool, error) {
	if !b.confirmer.Confirm(RemovePrompt) {
		b.logger.Debug("bridge: image removal declined")
		return false, nil
	}
	if err := b.engine.RemoveResource(locator); err != nil {
		return false, fmt.Errorf("remove resource: %w", err)
	}
	return true, nil
}
