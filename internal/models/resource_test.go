// ABOUTME: Tests for Resource model.
// ABOUTME: Validates mime detection and data URL encoding.

package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewResourceDetectsMimeType(t *testing.T) {
	res := NewResource("photo.png", "", []byte("\x89PNG\r\n\x1a\n"))

	if res.MimeType != "image/png" {
		t.Errorf("expected image/png, got %q", res.MimeType)
	}
	if !res.IsImage() {
		t.Error("expected resource to be an image")
	}
}

func TestNewResourceSniffsUnknownExtension(t *testing.T) {
	res := NewResource("blob", "", []byte("GIF89a......"))

	if res.MimeType != "image/gif" {
		t.Errorf("expected image/gif, got %q", res.MimeType)
	}
}

func TestDataURL(t *testing.T) {
	res := NewResource("a.txt", "text/plain", []byte("hi"))

	if got := res.DataURL(); got != "data:text/plain;base64,aGk=" {
		t.Errorf("unexpected data URL %q", got)
	}
}

func TestReadResource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.jpg")
	if err := os.WriteFile(path, []byte("\xff\xd8\xff\xe0"), 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	res, err := ReadResource(path)
	if err != nil {
		t.Fatalf("failed to read resource: %v", err)
	}
	if res.Filename != "pic.jpg" {
		t.Errorf("expected filename pic.jpg, got %q", res.Filename)
	}
	if !strings.HasPrefix(res.DataURL(), "data:image/jpeg;base64,") {
		t.Errorf("unexpected data URL prefix %q", res.DataURL()[:30])
	}
}

func TestReadResourceMissingFile(t *testing.T) {
	if _, err := ReadResource(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
