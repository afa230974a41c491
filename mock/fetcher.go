package mock

import (
	"context"

	"github.com/fwojciec/fetcher"
)

var _ fetcher.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of fetcher.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*fetcher.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*fetcher.Response, error) {
	return f.FetchFn(ctx, url)
}
