// Package goquery implements article extraction and image localization on
// top of the goquery HTML toolkit.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/fetcher"
	"golang.org/x/net/html"
)

// Selectors used to pick the article body.
const (
	ContainerSelector = "article, section"
	LeafSelector      = "p, h1, h2, h3, h4, h5, h6"
)

// Ensure Extractor implements fetcher.Extractor at compile time.
var _ fetcher.Extractor = (*Extractor)(nil)

// Extractor selects the article body of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses rawHTML, strips the footer and returns the serialized
// visible nodes of the article selection.
func (e *Extractor) Extract(rawHTML string) (*fetcher.Extraction, error) {
	doc, err := ParseDocument(rawHTML)
	if err != nil {
		return nil, err
	}

	StripFooter(doc)

	nodes := Select(doc)
	if len(nodes) == 0 {
		return nil, fetcher.Errorf(fetcher.ENOCONTENT, "failed to find any of [article, section, p, h1-h6]")
	}

	fragments := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if !IsVisible(n) {
			continue
		}
		fragment, err := renderNode(n)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}

	return &fetcher.Extraction{
		Title:     DocumentTitle(doc),
		Selected:  len(nodes),
		Fragments: fragments,
	}, nil
}

// ParseDocument parses raw HTML into a navigable document.
func ParseDocument(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fetcher.Errorf(fetcher.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// DocumentTitle returns the trimmed text of the first <title> element.
func DocumentTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// StripFooter detaches the page footer from the document: the first
// <footer> element, or failing that the first <div> with class "footer".
// It reports whether a footer was found.
func StripFooter(doc *goquery.Document) bool {
	footer := doc.Find("footer").First()
	if footer.Length() == 0 {
		footer = doc.Find("div.footer").First()
	}
	if footer.Length() == 0 {
		return false
	}
	footer.Remove()
	return true
}

// Select returns the nodes that make up the article, in document order.
//
// Without any <article> or <section> the selection is every paragraph and
// heading. Otherwise it is the containers followed by every paragraph or
// heading that is not a paragraph inside one of the containers.
func Select(doc *goquery.Document) []*html.Node {
	containers := doc.Find(ContainerSelector)
	leaves := doc.Find(LeafSelector)

	if containers.Length() == 0 {
		return append([]*html.Node(nil), leaves.Nodes...)
	}

	contained := make(map[*html.Node]bool)
	containers.Find("p").Each(func(_ int, sel *goquery.Selection) {
		contained[sel.Get(0)] = true
	})

	selected := make(map[*html.Node]bool, containers.Length())
	nodes := make([]*html.Node, 0, containers.Length())
	for _, n := range containers.Nodes {
		selected[n] = true
		nodes = append(nodes, n)
	}

	for _, n := range leaves.Nodes {
		if contained[n] || selected[n] {
			continue
		}
		selected[n] = true
		nodes = append(nodes, n)
	}

	return nodes
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fetcher.Errorf(fetcher.EINTERNAL, "failed to render %s: %v", n.Data, err)
	}
	return buf.String(), nil
}
