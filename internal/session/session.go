// ABOUTME: Editing buffer for the selected note with a debounced commit.
// ABOUTME: Each edit restarts the timer; only the newest timer may commit.

package session

import (
	"log/slog"
	"time"

	"github.com/harper/quill/internal/clock"
	"github.com/harper/quill/internal/models"
)

// DefaultDelay is the quiet period after the last edit before a commit.
const DefaultDelay = 500 * time.Millisecond

// Committer applies a buffered edit. It reports false when the edit was
// rejected, e.g. because the note is no longer selected.
type Committer interface {
	Update(id int64, title, content string) (models.Note, bool)
}

// State of the session.
type State int

const (
	// Idle means no commit is scheduled.
	Idle State = iota
	// Editing means a commit timer is pending.
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Session buffers title and content for one note at a time. It is not safe
// for concurrent use; timer callbacks re-enter through the poster so they
// run on the same goroutine as every other call.
type Session struct {
	committer Committer
	clock     clock.Clock
	delay     time.Duration
	post      func(func())
	logger    *slog.Logger

	bound       bool
	noteID      int64
	baseTitle   string
	baseContent string
	title       string
	content     string

	timer clock.Timer
	gen   uint64
}

// Option configures a Session.
type Option func(*Session)

func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithDelay sets the debounce interval.
func WithDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithPoster sets how timer expiry is delivered. The event loop passes a
// function that enqueues the callback; without one the callback runs on the
// timer's goroutine.
func WithPoster(post func(func())) Option {
	return func(s *Session) {
		s.post = post
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(committer Committer, opts ...Option) *Session {
	s := &Session{
		committer: committer,
		clock:     clock.Real(),
		delay:     DefaultDelay,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.post == nil {
		s.post = func(f func()) { f() }
	}
	return s
}

// Bind resets the buffer to note, dropping any pending commit.
func (s *Session) Bind(note models.Note) {
	s.Cancel()
	s.bound = true
	s.noteID = note.ID
	s.baseTitle, s.baseContent = note.Title, note.Content
	s.title, s.content = note.Title, note.Content
}

// Unbind detaches the session, dropping any pending commit.
func (s *Session) Unbind() {
	s.Cancel()
	s.bound = false
	s.noteID = 0
	s.baseTitle, s.baseContent = "", ""
	s.title, s.content = "", ""
}

// SetTitle records a title edit and restarts the commit timer.
func (s *Session) SetTitle(title string) {
	if !s.bound {
		return
	}
	s.title = title
	s.schedule()
}

// SetContent records a content edit and restarts the commit timer.
func (s *Session) SetContent(content string) {
	if !s.bound {
		return
	}
	s.content = content
	s.schedule()
}

// Flush commits a pending edit immediately. It reports whether a timer was
// pending.
func (s *Session) Flush() bool {
	if s.timer == nil {
		return false
	}
	s.stop()
	s.commit()
	return true
}

// Cancel drops a pending commit without applying it.
func (s *Session) Cancel() {
	if s.timer != nil {
		s.logger.Debug("session: pending edit cancelled", "id", s.noteID)
	}
	s.stop()
}

func (s *Session) State() State {
	if s.timer != nil {
		return Editing
	}
	return Idle
}

// Buffer returns the buffered title and content.
func (s *Session) Buffer() (title, content string) {
	return s.title, s.content
}

// NoteID returns the bound note id and whether a note is bound.
func (s *Session) NoteID() (int64, bool) {
	return s.noteID, s.bound
}

// Dirty reports whether the buffer differs from the last known note text.
func (s *Session) Dirty() bool {
	return s.bound && (s.title != s.baseTitle || s.content != s.baseContent)
}

// Pending reports whether a commit timer is running.
func (s *Session) Pending() bool {
	return s.timer != nil
}

func (s *Session) schedule() {
	s.stop()
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.delay, func() {
		s.post(func() { s.fire(gen) })
	})
}

// stop cancels the timer and invalidates any expiry already in flight.
func (s *Session) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *Session) fire(gen uint64) {
	if gen != s.gen || s.timer == nil {
		s.logger.Debug("session: stale timer ignored", "id", s.noteID)
		return
	}
	s.timer = nil
	s.gen++
	s.commit()
}

func (s *Session) commit() {
	if !s.Dirty() {
		return
	}
	note, ok := s.committer.Update(s.noteID, s.title, s.content)
	if !ok {
		s.logger.Warn("session: commit rejected, edit dropped", "id", s.noteID)
		return
	}
	s.baseTitle, s.baseContent = note.Title, note.Content
	s.logger.Debug("session: committed", "id", note.ID)
}
