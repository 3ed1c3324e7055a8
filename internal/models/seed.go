// ABOUTME: Default sample collection used when nothing valid is stored.
// ABOUTME: Three notes dated today, yesterday and two days ago.

package models

import "time"

// DefaultSeed returns the fallback collection relative to now.
func DefaultSeed(now time.Time) []Note {
	return []Note{
		{
			ID:        1,
			Title:     "First note",
			Content:   "Hello world!",
			UpdatedAt: now,
		},
		{
			ID:        2,
			Title:     "Second note",
			Content:   "Stylish notes",
			UpdatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:        3,
			Title:     "To-do list",
			Content:   "Buy milk\nDo homework\nWalk the dog",
			UpdatedAt: now.Add(-48 * time.Hour),
		},
	}
}
