// ABOUTME: Authoritative in-memory note collection with selection and search query.
// ABOUTME: Every mutation hands the resulting collection to a persister.

package notes

import (
	"log/slog"

	"github.com/harper/quill/internal/clock"
	"github.com/harper/quill/internal/models"
	"github.com/harper/quill/internal/search"
)

// Persister receives a full copy of the collection after each mutation.
// Submit must not block on I/O.
type Persister interface {
	Submit(notes []models.Note)
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(notes []models.Note)

func (f PersisterFunc) Submit(notes []models.Note) { f(notes) }

// Store owns the collection, the selected id and the search query. It is
// not safe for concurrent use; a single event loop drives it.
type Store struct {
	notes     []models.Note
	selected  int64
	query     string
	lastID    int64
	persister Persister
	clock     clock.Clock
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds a store over initial. The first note starts selected.
func New(initial []models.Note, persister Persister, opts ...Option) *Store {
	if persister == nil {
		persister = PersisterFunc(func([]models.Note) {})
	}
	s := &Store{
		persister: persister,
		clock:     clock.Real(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset(initial)
	return s
}

// Reset replaces the collection without persisting it, selecting the first
// note and clearing the query.
func (s *Store) Reset(notes []models.Note) {
	s.reset(notes)
}

func (s *Store) reset(notes []models.Note) {
	s.notes = append([]models.Note(nil), notes...)
	s.query = ""
	s.selected = 0
	if len(s.notes) > 0 {
		s.selected = s.notes[0].ID
	}
	for _, n := range s.notes {
		if n.ID > s.lastID {
			s.lastID = n.ID
		}
	}
}

// Notes returns a copy of the collection in store order.
func (s *Store) Notes() []models.Note {
	return append([]models.Note(nil), s.notes...)
}

func (s *Store) Len() int {
	return len(s.notes)
}

// Get returns the note with id.
func (s *Store) Get(id int64) (models.Note, bool) {
	if i := s.index(id); i >= 0 {
		return s.notes[i], true
	}
	return models.Note{}, false
}

// Selected returns the selected note, if any.
func (s *Store) Selected() (models.Note, bool) {
	if s.selected == 0 {
		return models.Note{}, false
	}
	return s.Get(s.selected)
}

// SelectedID returns the selected id, or 0 when nothing is selected.
func (s *Store) SelectedID() int64 {
	return s.selected
}

func (s *Store) Query() string {
	return s.query
}

// SetQuery replaces the search query. Selection is unaffected.
func (s *Store) SetQuery(q string) {
	s.query = q
}

// Visible returns the notes matching the current query.
func (s *Store) Visible() []models.Note {
	return search.Filter(s.notes, s.query)
}

// Create prepends an empty note, selects it and clears the query.
func (s *Store) Create() models.Note {
	note := models.NewNote(s.nextID(), s.clock.Now())
	s.notes = append([]models.Note{note}, s.notes...)
	s.selected = note.ID
	s.query = ""
	s.logger.Debug("notes: created", "id", note.ID)
	s.persist()
	return note
}

// Update replaces title and content of the selected note. Updates for any
// other id are dropped and report false.
func (s *Store) Update(id int64, title, content string) (models.Note, bool) {
	if s.selected == 0 || id != s.selected {
		s.logger.Debug("notes: update for unselected note dropped", "id", id, "selected", s.selected)
		return models.Note{}, false
	}
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("notes: update for missing note dropped", "id", id)
		return models.Note{}, false
	}
	n := &s.notes[i]
	n.Title = title
	n.Content = content
	n.Touch(s.clock.Now())
	s.persist()
	return *n, true
}

// Delete removes the note with id. When it was selected, selection moves to
// the first remaining note, or to none.
func (s *Store) Delete(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	if s.selected == id {
		s.selected = 0
		if len(s.notes) > 0 {
			s.selected = s.notes[0].ID
		}
	}
	s.logger.Debug("notes: deleted", "id", id, "selected", s.selected)
	s.persist()
	return true
}

// Select makes id the selection. A non-member clears the selection and
// reports false.
func (s *Store) Select(id int64) bool {
	if s.index(id) < 0 {
		s.selected = 0
		return false
	}
	s.selected = id
	return true
}

// ClearSelection leaves no note selected.
func (s *Store) ClearSelection() {
	s.selected = 0
}

// Import appends notes to the collection. Notes whose id is taken or not
// positive get a fresh id. Returns the number of notes added.
func (s *Store) Import(notes []models.Note) int {
	if len(notes) == 0 {
		return 0
	}
	for _, n := range notes {
		if n.ID <= 0 || s.index(n.ID) >= 0 {
			n.ID = s.nextID()
		} else if n.ID > s.lastID {
			s.lastID = n.ID
		}
		if n.UpdatedAt.IsZero() {
			n.UpdatedAt = s.clock.Now()
		}
		s.notes = append(s.notes, n)
	}
	if s.selected == 0 {
		s.selected = s.notes[0].ID
	}
	s.logger.Debug("notes: imported", "count", len(notes))
	s.persist()
	return len(notes)
}

// nextID derives an id from the clock in milliseconds, bumping past the
// highest id seen so rapid creation never collides.
func (s *Store) nextID() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) index(id int64) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist() {
	s.persister.Submit(s.Notes())
}
