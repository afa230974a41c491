// Package http provides an HTTP-based implementation of fetcher.Fetcher.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/fetcher"
)

// Ensure Fetcher implements fetcher.Fetcher at compile time.
var _ fetcher.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages and images using plain GET requests.
// Redirects are followed by the client; no headers are added.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests, body included.
// Defaults to fetcher.DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithTransport replaces the client transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.client.Transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{},
		timeout: fetcher.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client.Timeout = f.timeout

	return f
}

// Fetch performs a GET and returns the status code and body.
// Statuses of 400 and above are not errors; callers check Response.OK.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*fetcher.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetcher.Errorf(fetcher.EINVALID, "invalid request URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.classify(ctx, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, f.classify(ctx, url, err)
	}

	return &fetcher.Response{
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// classify maps a transport error to an application error.
// Cancellation is returned as is.
func (f *Fetcher) classify(ctx context.Context, url string, err error) error {
	if isTimeout(err) {
		return fetcher.Errorf(fetcher.ETIMEOUT, "timed out fetching %s after %s", url, f.timeout)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fetcher.Errorf(fetcher.EFETCH, "failed to fetch %s: %v", url, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
