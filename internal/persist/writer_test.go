// ABOUTME: Tests for the background snapshot writer.
// ABOUTME: Verifies latest-wins ordering, flushing and failure accounting.

package persist

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/quill/internal/models"
)

// gatedSaver blocks each Save until release is signalled.
type gatedSaver struct {
	mu      sync.Mutex
	saved   [][]models.Note
	started chan struct{}
	release chan struct{}
	err     error
}

func newGatedSaver() *gatedSaver {
	return &gatedSaver{
		started: make(chan struct{}, 16),
		release: make(chan struct{}, 16),
	}
}

func (s *gatedSaver) Save(notes []models.Note) error {
	s.started <- struct{}{}
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, notes)
	return s.err
}

func (s *gatedSaver) ids() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for _, snap := range s.saved {
		ids = append(ids, snap[0].ID)
	}
	return ids
}

func snap(id int64) []models.Note {
	return []models.Note{{ID: id}}
}

func TestWriterSupersedesPendingSnapshots(t *testing.T) {
	saver := newGatedSaver()
	w := NewWriter(saver, nil)
	defer w.Close()

	w.Submit(snap(1))
	<-saver.started

	w.Submit(snap(2))
	w.Submit(snap(3))

	saver.release <- struct{}{}
	<-saver.started
	saver.release <- struct{}{}
	w.Flush()

	assert.Equal(t, []int64{1, 3}, saver.ids())
	assert.NoError(t, w.Err())
}

func TestWriterCopiesSubmittedSlice(t *testing.T) {
	saver := newGatedSaver()
	w := NewWriter(saver, nil)
	defer w.Close()

	notes := snap(1)
	w.Submit(notes)
	notes[0].ID = 99

	<-saver.started
	saver.release <- struct{}{}
	w.Flush()

	assert.Equal(t, []int64{1}, saver.ids())
}

func TestWriterFailuresAreSwallowed(t *testing.T) {
	saver := newGatedSaver()
	saver.err = errors.New("disk full")
	w := NewWriter(saver, nil)
	defer w.Close()

	w.Submit(snap(1))
	<-saver.started
	saver.release <- struct{}{}
	w.Flush()

	assert.EqualError(t, w.Err(), "disk full")
	assert.Equal(t, 1, w.Failures())
}

func TestWriterCloseFlushesAndDropsLateSubmits(t *testing.T) {
	saver := newGatedSaver()
	w := NewWriter(saver, nil)

	w.Submit(snap(1))
	<-saver.started
	saver.release <- struct{}{}
	w.Close()
	w.Close()

	w.Submit(snap(2))
	w.Flush()

	require.Equal(t, []int64{1}, saver.ids())
}

func TestWriterFlushWithNothingSubmitted(t *testing.T) {
	w := NewWriter(newGatedSaver(), nil)
	defer w.Close()

	w.Flush()
}

type panickySaver struct {
	mu    sync.Mutex
	calls int
}

func (s *panickySaver) Save(notes []models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls == 1 {
		panic("driver bug")
	}
	return nil
}

func TestWriterSurvivesPanickingSaver(t *testing.T) {
	saver := &panickySaver{}
	w := NewWriter(saver, nil)

	w.Submit(snap(1))
	w.Flush()
	require.Error(t, w.Err())
	assert.Contains(t, w.Err().Error(), "driver bug")
	assert.Equal(t, 1, w.Failures())

	w.Submit(snap(2))
	w.Flush()
	assert.NoError(t, w.Err())

	w.Close()
}
