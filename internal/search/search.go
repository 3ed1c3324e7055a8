// ABOUTME: Case-insensitive substring filter over the note collection.
// ABOUTME: Pure functions; the input slice is never modified.

package search

import (
	"strings"

	"github.com/harper/quill/internal/models"
)

// Filter returns the notes whose title or content contains query, ignoring
// case, in their original order. An empty query returns every note.
func Filter(notes []models.Note, query string) []models.Note {
	if query == "" {
		return append([]models.Note(nil), notes...)
	}
	q := strings.ToLower(query)
	var out []models.Note
	for _, n := range notes {
		if matches(n, q) {
			out = append(out, n)
		}
	}
	return out
}

// Matches reports whether a single note passes the filter.
func Matches(note models.Note, query string) bool {
	if query == "" {
		return true
	}
	return matches(note, strings.ToLower(query))
}

func matches(n models.Note, lowered string) bool {
	return strings.Contains(strings.ToLower(n.Title), lowered) ||
		strings.Contains(strings.ToLower(n.Content), lowered)
}
