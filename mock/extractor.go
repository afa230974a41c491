package mock

import "github.com/fwojciec/fetcher"

var _ fetcher.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of fetcher.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*fetcher.Extraction, error)
}

func (e *Extractor) Extract(html string) (*fetcher.Extraction, error) {
	return e.ExtractFn(html)
}
