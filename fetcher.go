// Package fetcher archives a single web article to the local disk.
// It fetches a page, selects the nodes that make up the article body,
// downloads the images those nodes reference and writes a self-contained
// HTML file under ~/.fetcher.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package fetcher

import "context"

// Response is the result of a GET request.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is a success.
// Redirects are followed by the client, so anything below 400 counts.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

// Fetcher retrieves resources over the network.
type Fetcher interface {
	// Fetch performs a blocking GET. Non-success statuses are returned as
	// a Response, not as an error; transport failures are errors.
	// Returns ETIMEOUT if the request deadline expires.
	Fetch(ctx context.Context, url string) (*Response, error)
}
