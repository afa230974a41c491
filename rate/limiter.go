// Package rate paces image downloads per host.
package rate

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/fetcher"
	"golang.org/x/time/rate"
)

var _ fetcher.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per host with a token bucket each.
// Hosts are independent, so images from a CDN do not wait on the page's
// own server.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each host, with a burst of 1. A non-positive rps disables pacing.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}
	return d.limiter(HostKey(host)).Wait(ctx)
}

func (d *DomainLimiter) limiter(key string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[key] = l
	}
	return l
}

// HostKey normalizes a URL authority so that spellings of the same server
// share a bucket: lower case, default HTTP and HTTPS ports dropped.
func HostKey(authority string) string {
	key := strings.ToLower(authority)
	for _, port := range []string{":80", ":443"} {
		if trimmed, ok := strings.CutSuffix(key, port); ok {
			return trimmed
		}
	}
	return key
}
