package goquery_test

import (
	"testing"

	"github.com/fwojciec/fetcher"
	"github.com/fwojciec/fetcher/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func tags(nodes []*html.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Data
		for _, a := range n.Attr {
			if a.Key == "id" {
				out[i] += "#" + a.Val
			}
		}
	}
	return out
}

func TestSelect(t *testing.T) {
	t.Parallel()

	t.Run("container with paragraphs and an outside paragraph", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body>
<article id="a"><p>one</p><p>two</p></article>
<p id="outside">three</p>
</body></html>`)
		require.NoError(t, err)

		nodes := goquery.Select(doc)

		assert.Equal(t, []string{"article#a", "p#outside"}, tags(nodes))
	})

	t.Run("no containers selects headings and paragraphs in order", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body>
<h1 id="h1">Title</h1>
<p id="p1">Intro</p>
<div><h2 id="h2">Part</h2><p id="p2">Body</p></div>
<h3 id="h3">End</h3>
</body></html>`)
		require.NoError(t, err)

		nodes := goquery.Select(doc)

		assert.Equal(t, []string{"h1#h1", "p#p1", "h2#h2", "p#p2", "h3#h3"}, tags(nodes))
	})

	t.Run("containers come first in document order", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body>
<p id="before">before</p>
<section id="s1"><p>in s1</p></section>
<article id="a1"><section id="s2"><p>nested</p></section></article>
<p id="after">after</p>
</body></html>`)
		require.NoError(t, err)

		nodes := goquery.Select(doc)

		assert.Equal(t, []string{"section#s1", "article#a1", "section#s2", "p#before", "p#after"}, tags(nodes))
	})

	t.Run("headings inside containers are still selected", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body>
<article id="a"><h1 id="head">Head</h1><p>text</p></article>
</body></html>`)
		require.NoError(t, err)

		nodes := goquery.Select(doc)

		assert.Equal(t, []string{"article#a", "h1#head"}, tags(nodes))
	})

	t.Run("equal paragraphs are distinct nodes", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body>
<article id="a"><p>same</p></article>
<p id="x">same</p>
<p id="y">same</p>
</body></html>`)
		require.NoError(t, err)

		nodes := goquery.Select(doc)

		assert.Equal(t, []string{"article#a", "p#x", "p#y"}, tags(nodes))
	})

	t.Run("empty page selects nothing", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body><div>just a div</div></body></html>`)
		require.NoError(t, err)

		assert.Empty(t, goquery.Select(doc))
	})
}

func TestStripFooter(t *testing.T) {
	t.Parallel()

	t.Run("removes the footer element", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body>
<p id="keep">keep</p>
<footer><p id="gone">copyright</p></footer>
</body></html>`)
		require.NoError(t, err)

		found := goquery.StripFooter(doc)

		assert.True(t, found)
		assert.Equal(t, []string{"p#keep"}, tags(goquery.Select(doc)))
	})

	t.Run("falls back to a div with class footer", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body>
<article id="a"><p>story</p></article>
<div class="site footer"><p id="gone">links</p></div>
</body></html>`)
		require.NoError(t, err)

		found := goquery.StripFooter(doc)

		assert.True(t, found)
		assert.Equal(t, []string{"article#a"}, tags(goquery.Select(doc)))
	})

	t.Run("prefers the footer element over the div", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body>
<div class="footer"><p id="div-footer">div</p></div>
<footer><p>element</p></footer>
</body></html>`)
		require.NoError(t, err)

		goquery.StripFooter(doc)

		assert.Equal(t, []string{"p#div-footer"}, tags(goquery.Select(doc)))
	})

	t.Run("leaves pages without a footer unchanged", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body><p id="p">text</p></body></html>`)
		require.NoError(t, err)

		found := goquery.StripFooter(doc)

		assert.False(t, found)
		assert.Equal(t, []string{"p#p"}, tags(goquery.Select(doc)))
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("serializes selected nodes with the title", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>
  My Story
</title></head><body>
<article><p>one</p><p>two</p></article>
<p>outside</p>
</body></html>`

		result, err := goquery.NewExtractor().Extract(page)

		require.NoError(t, err)
		assert.Equal(t, "My Story", result.Title)
		assert.Equal(t, 2, result.Selected)
		assert.Equal(t, []string{
			"<article><p>one</p><p>two</p></article>",
			"<p>outside</p>",
		}, result.Fragments)
	})

	t.Run("drops invisible nodes", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>T</title></head><body>
<p>shown</p>
<p style="display:none">secret</p>
<div style="hidden"><div><p>buried</p></div></div>
</body></html>`

		result, err := goquery.NewExtractor().Extract(page)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Selected)
		assert.Equal(t, []string{"<p>shown</p>"}, result.Fragments)
	})

	t.Run("never selects footer content", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>T</title></head><body>
<p>story</p>
<footer><p>about us</p><h2>contact</h2></footer>
</body></html>`

		result, err := goquery.NewExtractor().Extract(page)

		require.NoError(t, err)
		assert.Equal(t, []string{"<p>story</p>"}, result.Fragments)
	})

	t.Run("fails with no content found", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>T</title></head><body><div>nothing here</div></body></html>`

		_, err := goquery.NewExtractor().Extract(page)

		require.Error(t, err)
		assert.Equal(t, fetcher.ENOCONTENT, fetcher.ErrorCode(err))
	})

	t.Run("content only inside the footer is no content", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>T</title></head><body><footer><p>only footer</p></footer></body></html>`

		_, err := goquery.NewExtractor().Extract(page)

		require.Error(t, err)
		assert.Equal(t, fetcher.ENOCONTENT, fetcher.ErrorCode(err))
	})

	t.Run("missing title is empty", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract(`<p>text</p>`)

		require.NoError(t, err)
		assert.Empty(t, result.Title)
	})
}
