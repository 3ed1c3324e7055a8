// ABOUTME: Tests for the note store.
// ABOUTME: Covers creation, selection, guarded updates, deletion and persistence hand-off.

package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/quill/internal/clock"
	"github.com/harper/quill/internal/models"
)

var epoch = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type recorder struct {
	snapshots [][]models.Note
}

func (r *recorder) Submit(notes []models.Note) {
	r.snapshots = append(r.snapshots, notes)
}

func (r *recorder) last() []models.Note {
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

func newStore(t *testing.T, initial []models.Note) (*Store, *recorder, *clock.Fake) {
	t.Helper()
	rec := &recorder{}
	c := clock.NewFake(epoch)
	return New(initial, rec, WithClock(c)), rec, c
}

func noteIDs(notes []models.Note) []int64 {
	out := []int64{}
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestNewSelectsFirstNote(t *testing.T) {
	s, rec, _ := newStore(t, models.DefaultSeed(epoch))

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(1), sel.ID)
	assert.Empty(t, rec.snapshots)
}

func TestNewEmptyHasNoSelection(t *testing.T) {
	s, _, _ := newStore(t, nil)

	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Equal(t, int64(0), s.SelectedID())
}

func TestCreatePrependsSelectsAndClearsQuery(t *testing.T) {
	s, rec, _ := newStore(t, models.DefaultSeed(epoch))
	s.SetQuery("milk")

	note := s.Create()

	assert.Equal(t, epoch.UnixMilli(), note.ID)
	assert.Empty(t, note.Title)
	assert.Empty(t, note.Content)
	assert.Equal(t, epoch, note.UpdatedAt)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, note.ID, s.Notes()[0].ID)
	assert.Equal(t, note.ID, s.SelectedID())
	assert.Equal(t, "", s.Query())
	require.Len(t, rec.snapshots, 1)
	assert.Equal(t, noteIDs(s.Notes()), noteIDs(rec.last()))
}

func TestRapidCreateNeverCollides(t *testing.T) {
	s, _, _ := newStore(t, nil)

	a := s.Create()
	b := s.Create()
	c := s.Create()

	assert.Equal(t, a.ID+1, b.ID)
	assert.Equal(t, b.ID+1, c.ID)
	assert.Equal(t, []int64{c.ID, b.ID, a.ID}, noteIDs(s.Notes()))
}

func TestCreateBumpsPastLoadedIDs(t *testing.T) {
	future := []models.Note{{ID: epoch.UnixMilli() + 1000, UpdatedAt: epoch}}
	s, _, _ := newStore(t, future)

	note := s.Create()

	assert.Equal(t, future[0].ID+1, note.ID)
}

func TestUpdateSelectedNote(t *testing.T) {
	s, rec, c := newStore(t, models.DefaultSeed(epoch))
	c.Advance(time.Minute)

	updated, ok := s.Update(1, "T", "<p>C</p>")

	require.True(t, ok)
	assert.Equal(t, "T", updated.Title)
	assert.Equal(t, "<p>C</p>", updated.Content)
	assert.Equal(t, epoch.Add(time.Minute), updated.UpdatedAt)
	got, _ := s.Get(1)
	assert.Equal(t, updated, got)
	sel, _ := s.Selected()
	assert.Equal(t, updated, sel)
	require.Len(t, rec.snapshots, 1)
	assert.Equal(t, "T", rec.last()[0].Title)
}

func TestUpdateIsIdempotentOnText(t *testing.T) {
	s, _, c := newStore(t, models.DefaultSeed(epoch))

	first, ok := s.Update(1, "T", "C")
	require.True(t, ok)
	c.Advance(time.Second)
	second, ok := s.Update(1, "T", "C")
	require.True(t, ok)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Content, second.Content)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestUpdateForUnselectedNoteIsDropped(t *testing.T) {
	s, rec, _ := newStore(t, models.DefaultSeed(epoch))
	before := s.Notes()

	_, ok := s.Update(2, "T", "C")

	assert.False(t, ok)
	assert.Equal(t, before, s.Notes())
	assert.Empty(t, rec.snapshots)
}

func TestUpdateWithNothingSelectedIsDropped(t *testing.T) {
	s, rec, _ := newStore(t, models.DefaultSeed(epoch))
	s.ClearSelection()

	_, ok := s.Update(1, "T", "C")

	assert.False(t, ok)
	assert.Empty(t, rec.snapshots)
}

func TestUpdateNeverMovesTimestampBackwards(t *testing.T) {
	s, _, c := newStore(t, models.DefaultSeed(epoch))
	c.Set(epoch.Add(-time.Hour))

	updated, ok := s.Update(1, "T", "C")

	require.True(t, ok)
	assert.Equal(t, epoch, updated.UpdatedAt)
}

func TestDeleteSelectedReassignsToFirstRemaining(t *testing.T) {
	s, rec, _ := newStore(t, models.DefaultSeed(epoch))

	require.True(t, s.Delete(1))

	assert.Equal(t, []int64{2, 3}, noteIDs(s.Notes()))
	assert.Equal(t, int64(2), s.SelectedID())
	assert.Equal(t, []int64{2, 3}, noteIDs(rec.last()))
}

func TestDeleteMiddleSelectedNote(t *testing.T) {
	s, _, _ := newStore(t, models.DefaultSeed(epoch))
	require.True(t, s.Select(2))

	require.True(t, s.Delete(2))

	assert.Equal(t, int64(1), s.SelectedID())
}

func TestDeleteUnselectedKeepsSelection(t *testing.T) {
	s, _, _ := newStore(t, models.DefaultSeed(epoch))

	require.True(t, s.Delete(3))

	assert.Equal(t, int64(1), s.SelectedID())
}

func TestDeleteLastNoteClearsSelection(t *testing.T) {
	s, rec, _ := newStore(t, []models.Note{{ID: 5, UpdatedAt: epoch}})

	require.True(t, s.Delete(5))

	assert.Equal(t, 0, s.Len())
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Empty(t, rec.last())
	assert.Len(t, rec.snapshots, 1)
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	s, rec, _ := newStore(t, models.DefaultSeed(epoch))

	assert.False(t, s.Delete(99))
	assert.Equal(t, 3, s.Len())
	assert.Empty(t, rec.snapshots)
}

func TestSelect(t *testing.T) {
	s, rec, _ := newStore(t, models.DefaultSeed(epoch))

	assert.True(t, s.Select(3))
	assert.Equal(t, int64(3), s.SelectedID())

	assert.False(t, s.Select(42))
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Empty(t, rec.snapshots)
}

func TestSelectedMirrorsCollection(t *testing.T) {
	s, _, _ := newStore(t, models.DefaultSeed(epoch))

	_, ok := s.Update(1, "new", "body")
	require.True(t, ok)

	sel, _ := s.Selected()
	got, _ := s.Get(1)
	assert.Equal(t, got, sel)
}

func TestQueryDoesNotChangeSelection(t *testing.T) {
	s, _, _ := newStore(t, models.DefaultSeed(epoch))

	s.SetQuery("dog")

	assert.Equal(t, []int64{3}, noteIDs(s.Visible()))
	assert.Equal(t, int64(1), s.SelectedID())
}

func TestNotesReturnsCopy(t *testing.T) {
	s, _, _ := newStore(t, models.DefaultSeed(epoch))

	notes := s.Notes()
	notes[0].Title = "mutated"

	got, _ := s.Get(1)
	assert.Equal(t, "First note", got.Title)
}

func TestImportReassignsCollidingIDs(t *testing.T) {
	s, rec, _ := newStore(t, models.DefaultSeed(epoch))

	n := s.Import([]models.Note{
		{ID: 1, Title: "dup", UpdatedAt: epoch},
		{ID: 50, Title: "keep", UpdatedAt: epoch},
		{ID: 0, Title: "zero"},
	})

	assert.Equal(t, 3, n)
	assert.Equal(t, 6, s.Len())
	notes := s.Notes()
	assert.Equal(t, epoch.UnixMilli(), notes[3].ID)
	assert.Equal(t, int64(50), notes[4].ID)
	assert.Equal(t, epoch.UnixMilli()+1, notes[5].ID)
	assert.Equal(t, epoch, notes[5].UpdatedAt)
	assert.Equal(t, int64(1), s.SelectedID())
	assert.Len(t, rec.snapshots, 1)
}

func TestImportIntoEmptySelectsFirst(t *testing.T) {
	s, _, _ := newStore(t, nil)

	s.Import([]models.Note{{ID: 9, Title: "x", UpdatedAt: epoch}})

	assert.Equal(t, int64(9), s.SelectedID())
}

func TestResetDoesNotPersist(t *testing.T) {
	s, rec, _ := newStore(t, nil)

	s.Reset(models.DefaultSeed(epoch))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, int64(1), s.SelectedID())
	assert.Empty(t, rec.snapshots)
}
