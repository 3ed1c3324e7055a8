// ABOUTME: Note model representing a titled rich-text note.
// ABOUTME: Provides constructor and methods for note lifecycle.

package models

import (
	"time"
)

// Note is one entry of the collection. Content is an HTML fragment produced
// by the rich-text engine.
type Note struct {
	ID        int64
	Title     string
	Content   string
	UpdatedAt time.Time
}

// NewNote returns an empty note stamped with now.
func NewNote(id int64, now time.Time) Note {
	return Note{
		ID:        id,
		UpdatedAt: now,
	}
}

// Touch moves UpdatedAt forward to now. It never moves it backwards.
func (n *Note) Touch(now time.Time) {
	if now.After(n.UpdatedAt) {
		n.UpdatedAt = now
	}
}

// Equal reports whether two notes carry the same id, text and timestamp.
func (n Note) Equal(other Note) bool {
	return n.ID == other.ID &&
		n.Title == other.Title &&
		n.Content == other.Content &&
		n.UpdatedAt.Equal(other.UpdatedAt)
}
