package fetcher

// Extraction holds the readable content selected from an HTML page.
type Extraction struct {
	// Title is the document title, trimmed.
	Title string

	// Selected is the number of nodes in the article selection,
	// including nodes dropped afterwards as invisible.
	Selected int

	// Fragments is the serialized HTML of every visible selected node,
	// in document order.
	Fragments []string
}

// Extractor selects the article body of an HTML page.
type Extractor interface {
	// Extract parses raw HTML, removes the page footer and returns the
	// article fragments. Returns ENOCONTENT if nothing could be selected.
	Extract(html string) (*Extraction, error)
}
