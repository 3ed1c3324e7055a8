// ABOUTME: Serialization of the note collection to and from its stored form.
// ABOUTME: Decoding is typed and validated; timestamps accept several layouts.

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/harper/quill/internal/models"
)

// ErrDecode marks stored data that is not a valid note collection.
var ErrDecode = errors.New("invalid note data")

// record is the stored shape of a note.
type record struct {
	ID        *int64          `json:"id"`
	Title     *string         `json:"title"`
	Content   *string         `json:"content"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

type outRecord struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updatedAt"`
}

// EncodeNotes serializes the collection as a JSON array.
func EncodeNotes(notes []models.Note) ([]byte, error) {
	out := make([]outRecord, len(notes))
	for i, n := range notes {
		out[i] = outRecord{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			UpdatedAt: FormatTime(n.UpdatedAt),
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode notes: %w", err)
	}
	return data, nil
}

// DecodeNotes parses a stored collection. Any structural problem returns an
// error wrapping ErrDecode.
func DecodeNotes(data []byte) ([]models.Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrDecode)
	}

	var records []record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	notes := make([]models.Note, 0, len(records))
	seen := make(map[int64]bool, len(records))
	for i, r := range records {
		switch {
		case r.ID == nil:
			return nil, fmt.Errorf("%w: note %d: missing id", ErrDecode, i)
		case *r.ID <= 0:
			return nil, fmt.Errorf("%w: note %d: id must be positive", ErrDecode, i)
		case seen[*r.ID]:
			return nil, fmt.Errorf("%w: note %d: duplicate id %d", ErrDecode, i, *r.ID)
		case r.Title == nil:
			return nil, fmt.Errorf("%w: note %d: missing title", ErrDecode, *r.ID)
		case r.Content == nil:
			return nil, fmt.Errorf("%w: note %d: missing content", ErrDecode, *r.ID)
		}
		updated, err := ParseTime(r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: note %d: %v", ErrDecode, *r.ID, err)
		}
		seen[*r.ID] = true
		notes = append(notes, models.Note{
			ID:        *r.ID,
			Title:     *r.Title,
			Content:   *r.Content,
			UpdatedAt: updated,
		})
	}
	return notes, nil
}

// FormatTime renders a timestamp in its stored layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// jsDateLayout is the layout of Date.prototype.toString without the trailing
// zone name in parentheses.
const jsDateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"

// maxEpochMS bounds numeric timestamps to the range a JavaScript Date holds.
const maxEpochMS = 8.64e15

// ParseTime reconstitutes a stored timestamp. It accepts an RFC 3339 string,
// a Date.toString string, or a number of milliseconds since the epoch.
func ParseTime(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, errors.New("missing updatedAt")
	}

	if raw[0] != '"' {
		ms, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse updatedAt: %w", err)
		}
		if math.IsNaN(ms) || math.Abs(ms) > maxEpochMS {
			return time.Time{}, fmt.Errorf("updatedAt %s out of range", raw)
		}
		return time.UnixMilli(int64(ms)).UTC(), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("parse updatedAt: %w", err)
	}
	return ParseTimeString(s)
}

// ParseTimeString parses the string forms accepted by ParseTime.
func ParseTimeString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	js := s
	if i := strings.Index(js, " ("); i >= 0 {
		js = js[:i]
	}
	if t, err := time.Parse(jsDateLayout, js); err == nil {
		return t, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms >= -maxEpochMS && ms <= maxEpochMS {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
