// ABOUTME: In-process rich-text engine holding one HTML fragment.
// ABOUTME: Used by the CLI and TUI as the editor behind the bridge.

package richtext

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrResourceNotFound is returned when no image matches a locator.
var ErrResourceNotFound = errors.New("image not found")

// ImageClass is set on images inserted by the engine.
const ImageClass = "editor-image"

// Document is an HTML fragment with change notification. Replace and the
// resource methods count as user edits and notify; SetDocument does not.
type Document struct {
	mu       sync.Mutex
	doc      string
	onChange func(string)
}

func New(initial string) *Document {
	return &Document{doc: initial}
}

func (d *Document) Document() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc
}

func (d *Document) SetDocument(doc string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doc = doc
}

func (d *Document) OnChange(fn func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onChange = fn
}

// Replace sets the document as if the user had typed it.
func (d *Document) Replace(doc string) {
	d.mu.Lock()
	d.doc = doc
	d.mu.Unlock()
	d.notify(doc)
}

// InsertResource appends an image to the last paragraph, or to a new
// paragraph when the document ends with something else.
func (d *Document) InsertResource(ref string) error {
	return d.edit(func(root *html.Node) error {
		img := &html.Node{
			Type:     html.ElementNode,
			Data:     "img",
			DataAtom: atom.Img,
			Attr: []html.Attribute{
				{Key: "src", Val: ref},
				{Key: "class", Val: ImageClass},
			},
		}
		last := root.LastChild
		if last == nil || last.Type != html.ElementNode || last.DataAtom != atom.P {
			last = &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
			root.AppendChild(last)
		}
		last.AppendChild(img)
		return nil
	})
}

// RemoveResource deletes the first image whose src equals locator.
func (d *Document) RemoveResource(locator string) error {
	return d.edit(func(root *html.Node) error {
		var target *html.Node
		walk(root, func(n *html.Node) bool {
			if n.Type == html.ElementNode && n.DataAtom == atom.Img && attr(n, "src") == locator {
				target = n
				return false
			}
			return true
		})
		if target == nil {
			return ErrResourceNotFound
		}
		target.Parent.RemoveChild(target)
		return nil
	})
}

// Images returns the src of every image in document order.
func (d *Document) Images() []string {
	root, err := parse(d.Document())
	if err != nil {
		return nil
	}
	var srcs []string
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			srcs = append(srcs, attr(n, "src"))
		}
		return true
	})
	return srcs
}

func (d *Document) edit(fn func(root *html.Node) error) error {
	d.mu.Lock()
	root, err := parse(d.doc)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	if err := fn(root); err != nil {
		d.mu.Unlock()
		return err
	}
	out, err := render(root)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	d.doc = out
	d.mu.Unlock()
	d.notify(out)
	return nil
}

func (d *Document) notify(doc string) {
	d.mu.Lock()
	fn := d.onChange
	d.mu.Unlock()
	if fn != nil {
		fn(doc)
	}
}

func parse(doc string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(doc), body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}

func render(root *html.Node) (string, error) {
	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("render document: %w", err)
		}
	}
	return sb.String(), nil
}

// walk visits nodes depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !fn(c) || !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
