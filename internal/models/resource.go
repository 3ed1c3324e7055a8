// ABOUTME: Resource model for images embedded into note content.
// ABOUTME: Reads a file and encodes it as a data URL reference.

package models

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type Resource struct {
	Filename string
	MimeType string
	Data     []byte
}

func NewResource(filename, mimeType string, data []byte) *Resource {
	if mimeType == "" {
		mimeType = DetectMimeType(filename, data)
	}
	return &Resource{
		Filename: filename,
		MimeType: mimeType,
		Data:     data,
	}
}

// ReadResource loads an image file from disk.
func ReadResource(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource: %w", err)
	}
	return NewResource(filepath.Base(path), "", data), nil
}

// DetectMimeType guesses by extension first and falls back to sniffing.
func DetectMimeType(filename string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); t != "" {
		if i := strings.Index(t, ";"); i >= 0 {
			t = t[:i]
		}
		return t
	}
	return http.DetectContentType(data)
}

// IsImage reports whether the resource can be embedded as an image.
func (r *Resource) IsImage() bool {
	return strings.HasPrefix(r.MimeType, "image/")
}

// DataURL returns the embeddable reference for the resource.
func (r *Resource) DataURL() string {
	return "data:" + r.MimeType + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}
