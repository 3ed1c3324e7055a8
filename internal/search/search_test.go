// ABOUTME: Tests for the note search filter.
// ABOUTME: Validates case folding, field coverage and order preservation.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harper/quill/internal/models"
)

func fixture() []models.Note {
	return []models.Note{
		{ID: 1, Title: "Groceries", Content: "Buy MILK"},
		{ID: 2, Title: "Milkshake recipe", Content: "blend"},
		{ID: 3, Title: "Work", Content: "standup"},
	}
}

func ids(notes []models.Note) []int64 {
	out := []int64{}
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestFilterMatchesTitleOrContent(t *testing.T) {
	got := Filter(fixture(), "milk")

	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, []int64{3}, ids(Filter(fixture(), "STANDUP")))
	assert.Equal(t, []int64{1}, ids(Filter(fixture(), "gRoC")))
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	notes := fixture()
	got := Filter(notes, "")

	assert.Equal(t, []int64{1, 2, 3}, ids(got))
	got[0].Title = "changed"
	assert.Equal(t, "Groceries", notes[0].Title)
}

func TestFilterNoMatches(t *testing.T) {
	assert.Empty(t, Filter(fixture(), "zebra"))
}

func TestFilterNonASCII(t *testing.T) {
	notes := []models.Note{{ID: 1, Title: "Список дел", Content: "Купить молоко"}}

	assert.Equal(t, []int64{1}, ids(Filter(notes, "МОЛОКО")))
}

func TestMatches(t *testing.T) {
	n := models.Note{Title: "Hello", Content: "World"}

	assert.True(t, Matches(n, ""))
	assert.True(t, Matches(n, "WORLD"))
	assert.False(t, Matches(n, "moon"))
}
