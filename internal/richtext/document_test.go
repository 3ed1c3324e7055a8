// ABOUTME: Tests for the HTML document engine.
// ABOUTME: Covers notification rules and image insertion and removal.

package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDocumentDoesNotNotify(t *testing.T) {
	d := New("")
	called := false
	d.OnChange(func(string) { called = true })

	d.SetDocument("<p>hi</p>")

	assert.False(t, called)
	assert.Equal(t, "<p>hi</p>", d.Document())
}

func TestReplaceNotifies(t *testing.T) {
	d := New("")
	var got string
	d.OnChange(func(doc string) { got = doc })

	d.Replace("<p>typed</p>")

	assert.Equal(t, "<p>typed</p>", got)
}

func TestInsertResourceIntoLastParagraph(t *testing.T) {
	d := New("<p>one</p><p>two</p>")
	var got string
	d.OnChange(func(doc string) { got = doc })

	require.NoError(t, d.InsertResource("a.png"))

	want := `<p>one</p><p>two<img src="a.png" class="editor-image"/></p>`
	assert.Equal(t, want, d.Document())
	assert.Equal(t, want, got)
}

func TestInsertResourceIntoPlainText(t *testing.T) {
	d := New("Hello world!")

	require.NoError(t, d.InsertResource("a.png"))

	assert.Equal(t, `Hello world!<p><img src="a.png" class="editor-image"/></p>`, d.Document())
	assert.Equal(t, []string{"a.png"}, d.Images())
}

func TestRemoveResourceRemovesFirstMatch(t *testing.T) {
	d := New(`<p>x<img src="a.png"/><img src="b.png"/></p><p><img src="a.png"/></p>`)

	require.NoError(t, d.RemoveResource("a.png"))

	assert.Equal(t, []string{"b.png", "a.png"}, d.Images())
}

func TestRemoveResourceNotFound(t *testing.T) {
	d := New(`<p><img src="a.png"/></p>`)
	called := false
	d.OnChange(func(string) { called = true })

	err := d.RemoveResource("zzz.png")

	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.False(t, called)
	assert.Equal(t, `<p><img src="a.png"/></p>`, d.Document())
}

func TestImagesEmpty(t *testing.T) {
	assert.Empty(t, New("<p>no images</p>").Images())
}
