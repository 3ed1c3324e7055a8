// ABOUTME: Single-threaded event loop that owns the store, session and editor bridge.
// ABOUTME: All operations run as closures on the loop; persistence runs on a writer goroutine.

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harper/quill/internal/bridge"
	"github.com/harper/quill/internal/clock"
	"github.com/harper/quill/internal/models"
	"github.com/harper/quill/internal/notes"
	"github.com/harper/quill/internal/persist"
	"github.com/harper/quill/internal/richtext"
	"github.com/harper/quill/internal/session"
)

var (
	// ErrClosed is returned by operations after Close.
	ErrClosed = errors.New("app closed")
	// ErrFault is wrapped by the error returned after an unrecovered failure.
	ErrFault = errors.New("something went wrong")
	// ErrNotFound is returned for an unknown note id.
	ErrNotFound = errors.New("note not found")
	// ErrNoSelection is returned by editing operations when no note is selected.
	ErrNoSelection = errors.New("no note selected")
)

// Editor is the rich-text engine driven by the app. Replace applies a user
// edit; Images lists embedded image sources.
type Editor interface {
	bridge.Engine
	Replace(doc string)
	Images() []string
}

// View is a consistent snapshot of what a front end displays.
type View struct {
	Notes        []models.Note
	Total        int
	Query        string
	Selected     models.Note
	HasSelection bool
	Title        string
	Content      string
	Editing      bool
	Fault        error
}

type App struct {
	gateway *persist.Gateway
	writer  *persist.Writer
	store   *notes.Store
	session *session.Session
	bridge  *bridge.Bridge
	editor  Editor

	clock         clock.Clock
	logger        *slog.Logger
	delay         time.Duration
	flushOnSwitch bool
	confirmer     bridge.Confirmer
	onFault       func(error)

	fault error

	events    chan func()
	quit      chan struct{}
	stopped   chan struct{}
	changes   chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
}

// Option configures an App.
type Option func(*App)

func WithClock(c clock.Clock) Option {
	return func(a *App) {
		a.clock = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithDelay sets the edit debounce interval.
func WithDelay(d time.Duration) Option {
	return func(a *App) {
		a.delay = d
	}
}

// WithFlushOnSwitch chooses whether a pending edit is committed (true) or
// discarded (false) when the selection changes.
func WithFlushOnSwitch(flush bool) Option {
	return func(a *App) {
		a.flushOnSwitch = flush
	}
}

// WithEditor replaces the built-in HTML document engine.
func WithEditor(e Editor) Option {
	return func(a *App) {
		a.editor = e
	}
}

// WithConfirmer sets the prompt used before removing images. It is called
// on the event loop and must not call back into the App.
func WithConfirmer(c bridge.Confirmer) Option {
	return func(a *App) {
		a.confirmer = c
	}
}

// WithFaultHandler registers a callback for unrecovered failures.
func WithFaultHandler(fn func(error)) Option {
	return func(a *App) {
		a.onFault = fn
	}
}

// New loads the collection through gateway and starts the event loop.
func New(gateway *persist.Gateway, opts ...Option) *App {
	a := &App{
		gateway:       gateway,
		clock:         clock.Real(),
		logger:        slog.New(slog.DiscardHandler),
		delay:         session.DefaultDelay,
		flushOnSwitch: true,
		events:        make(chan func()),
		quit:          make(chan struct{}),
		stopped:       make(chan struct{}),
		changes:       make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.editor == nil {
		a.editor = richtext.New("")
	}

	a.writer = persist.NewWriter(gateway, a.logger)
	initial, seeded := gateway.Load()
	a.store = notes.New(initial, a.writer,
		notes.WithClock(a.clock),
		notes.WithLogger(a.logger),
	)
	a.session = session.New(a.store,
		session.WithClock(a.clock),
		session.WithDelay(a.delay),
		session.WithPoster(a.post),
		session.WithLogger(a.logger),
	)
	a.bridge = bridge.New(a.editor, a.confirmer, a.session.SetContent, a.logger)

	// Mirror whatever was loaded so a fresh store holds the sample notes.
	a.writer.Submit(initial)
	a.logger.Info("app: started", "notes", len(initial), "seeded", seeded)
	a.bindSelected()

	go a.run()
	return a
}

func (a *App) run() {
	defer close(a.stopped)
	for {
		select {
		case fn := <-a.events:
			fn()
		case <-a.quit:
			return
		}
	}
}

// Changes delivers a signal after state changes. Signals coalesce.
func (a *App) Changes() <-chan struct{} {
	return a.changes
}

func (a *App) notify() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// exec runs fn on the loop and waits for it. Unless always is set, fn is
// skipped while a fault is active.
func (a *App) exec(fn func() error, mutates, always bool) error {
	if a.closed.Load() {
		return ErrClosed
	}
	done := make(chan error, 1)
	task := func() {
		if a.fault != nil && !always {
			done <- a.fault
			return
		}
		err := a.guard(fn)
		if mutates {
			a.notify()
		}
		done <- err
	}
	select {
	case a.events <- task:
	case <-a.stopped:
		return ErrClosed
	}
	return <-done
}

func (a *App) mutate(fn func() error) error { return a.exec(fn, true, false) }
func (a *App) query(fn func() error) error  { return a.exec(fn, false, false) }

// post enqueues a timer callback. Callbacks arriving after Close or during
// a fault are dropped.
func (a *App) post(fn func()) {
	task := func() {
		if a.fault != nil {
			return
		}
		_ = a.guard(func() error {
			fn()
			return nil
		})
		a.notify()
	}
	select {
	case a.events <- task:
	case <-a.stopped:
	}
}

// guard converts a panic in fn into the app fault.
func (a *App) guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.fault = fmt.Errorf("%w: %v", ErrFault, r)
			a.logger.Error("app: unrecovered failure", "panic", r, "stack", string(debug.Stack()))
			if a.onFault != nil {
				a.onFault(a.fault)
			}
			err = a.fault
		}
	}()
	return fn()
}

// leave resolves a pending edit before the selection changes.
func (a *App) leave() {
	if a.flushOnSwitch {
		a.session.Flush()
		return
	}
	a.session.Cancel()
}

func (a *App) bindSelected() {
	if note, ok := a.store.Selected(); ok {
		a.session.Bind(note)
		a.bridge.Push(note.Content)
		return
	}
	a.session.Unbind()
	a.bridge.Push("")
}

func (a *App) requireSelection() error {
	if _, ok := a.store.Selected(); !ok {
		return ErrNoSelection
	}
	return nil
}

// View returns a snapshot for display. It works during a fault.
func (a *App) View() (View, error) {
	var v View
	err := a.exec(func() error {
		v.Notes = a.store.Visible()
		v.Total = a.store.Len()
		v.Query = a.store.Query()
		v.Selected, v.HasSelection = a.store.Selected()
		v.Title, v.Content = a.session.Buffer()
		v.Editing = a.session.Pending()
		v.Fault = a.fault
		return nil
	}, false, true)
	return v, err
}

// Notes returns the whole collection in store order.
func (a *App) Notes() ([]models.Note, error) {
	var out []models.Note
	err := a.query(func() error {
		out = a.store.Notes()
		return nil
	})
	return out, err
}

// Get returns one note.
func (a *App) Get(id int64) (models.Note, error) {
	var note models.Note
	err := a.query(func() error {
		var ok bool
		if note, ok = a.store.Get(id); !ok {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return nil
	})
	return note, err
}

// Create adds an empty note, selects it and clears the search query.
func (a *App) Create() (models.Note, error) {
	var note models.Note
	err := a.mutate(func() error {
		a.leave()
		note = a.store.Create()
		a.bindSelected()
		return nil
	})
	return note, err
}

// Select switches the selection. An unknown id leaves nothing selected and
// returns ErrNotFound.
func (a *App) Select(id int64) error {
	return a.mutate(func() error {
		if sel, ok := a.store.Selected(); ok && sel.ID == id {
			return nil
		}
		a.leave()
		ok := a.store.Select(id)
		a.bindSelected()
		if !ok {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return nil
	})
}

// Delete removes a note. Pending edits to a deleted selected note are
// discarded.
func (a *App) Delete(id int64) error {
	return a.mutate(func() error {
		return a.delete(id)
	})
}

// DeleteSelected removes the selected note.
func (a *App) DeleteSelected() error {
	return a.mutate(func() error {
		sel, ok := a.store.Selected()
		if !ok {
			return ErrNoSelection
		}
		return a.delete(sel.ID)
	})
}

func (a *App) delete(id int64) error {
	prev := a.store.SelectedID()
	if id == prev {
		a.session.Cancel()
	}
	if !a.store.Delete(id) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if a.store.SelectedID() != prev {
		a.bindSelected()
	}
	return nil
}

// SetQuery changes the search query.
func (a *App) SetQuery(q string) error {
	return a.mutate(func() error {
		a.store.SetQuery(q)
		return nil
	})
}

// SetTitle edits the selected note's title through the session.
func (a *App) SetTitle(title string) error {
	return a.mutate(func() error {
		if err := a.requireSelection(); err != nil {
			return err
		}
		a.session.SetTitle(title)
		return nil
	})
}

// EditContent applies a user edit of the whole document.
func (a *App) EditContent(doc string) error {
	return a.mutate(func() error {
		if err := a.requireSelection(); err != nil {
			return err
		}
		a.editor.Replace(doc)
		return nil
	})
}

// InsertImage embeds an image reference into the selected note.
func (a *App) InsertImage(ref string) error {
	return a.mutate(func() error {
		if err := a.requireSelection(); err != nil {
			return err
		}
		return a.bridge.InsertResource(ref)
	})
}

// RemoveImage asks for confirmation and removes an image from the selected
// note. It reports false when the user declined.
func (a *App) RemoveImage(src string) (bool, error) {
	var removed bool
	err := a.mutate(func() error {
		if err := a.requireSelection(); err != nil {
			return err
		}
		var err error
		removed, err = a.bridge.RemoveResource(src)
		return err
	})
	return removed, err
}

// Images lists the image sources of the selected note's document.
func (a *App) Images() ([]string, error) {
	var srcs []string
	err := a.query(func() error {
		if err := a.requireSelection(); err != nil {
			return err
		}
		srcs = a.editor.Images()
		return nil
	})
	return srcs, err
}

// Import appends notes to the collection.
func (a *App) Import(in []models.Note) (int, error) {
	var n int
	err := a.mutate(func() error {
		hadSelection := a.store.SelectedID() != 0
		n = a.store.Import(in)
		if !hadSelection {
			a.bindSelected()
		}
		return nil
	})
	return n, err
}

// Flush commits any pending edit and waits for storage to catch up.
func (a *App) Flush() error {
	if err := a.mutate(func() error {
		a.session.Flush()
		return nil
	}); err != nil {
		return err
	}
	a.writer.Flush()
	return nil
}

// Reload discards in-memory state, reloads from storage and clears a fault.
func (a *App) Reload() error {
	return a.exec(func() error {
		a.session.Cancel()
		a.writer.Flush()
		loaded, seeded := a.gateway.Load()
		a.store.Reset(loaded)
		a.writer.Submit(loaded)
		a.fault = nil
		a.bindSelected()
		a.logger.Info("app: reloaded", "notes", len(loaded), "seeded", seeded)
		return nil
	}, true, true)
}

// Err returns the active fault, if any.
func (a *App) Err() error {
	var fault error
	_ = a.exec(func() error {
		fault = a.fault
		return nil
	}, false, true)
	return fault
}

// WriteErr returns the outcome of the most recent storage write.
func (a *App) WriteErr() error {
	a.writer.Flush()
	return a.writer.Err()
}

// Close resolves pending edits, stops the loop and flushes storage.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		err = a.exec(func() error {
			a.leave()
			return nil
		}, false, true)
		a.closed.Store(true)
		close(a.quit)
		<-a.stopped
		a.writer.Close()
		a.logger.Debug("app: closed")
	})
	return err
}
