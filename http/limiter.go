package http

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/newsarchive"
	"golang.org/x/time/rate"
)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so requests to different hosts do not
// slow each other down.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per domain with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Ensure LimitedFetcher implements newsarchive.Fetcher at compile time.
var _ newsarchive.Fetcher = (*LimitedFetcher)(nil)

// LimitedFetcher waits for the target domain's limiter before every fetch.
type LimitedFetcher struct {
	next    newsarchive.Fetcher
	limiter *DomainLimiter
}

// NewLimitedFetcher wraps next with limiter.
func NewLimitedFetcher(next newsarchive.Fetcher, limiter *DomainLimiter) *LimitedFetcher {
	return &LimitedFetcher{next: next, limiter: limiter}
}

// Fetch waits for the domain's turn, then delegates.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := f.limiter.Wait(ctx, host(rawURL)); err != nil {
		return "", err
	}
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LimitedFetcher) Close() error {
	return f.next.Close()
}

// Ensure LimitedImageFetcher implements newsarchive.ImageFetcher at compile time.
var _ newsarchive.ImageFetcher = (*LimitedImageFetcher)(nil)

// LimitedImageFetcher waits for the target domain's limiter before every
// image download.
type LimitedImageFetcher struct {
	next    newsarchive.ImageFetcher
	limiter *DomainLimiter
}

// NewLimitedImageFetcher wraps next with limiter.
func NewLimitedImageFetcher(next newsarchive.ImageFetcher, limiter *DomainLimiter) *LimitedImageFetcher {
	return &LimitedImageFetcher{next: next, limiter: limiter}
}

// FetchImage waits for the domain's turn, then delegates.
func (f *LimitedImageFetcher) FetchImage(ctx context.Context, rawURL string) (*newsarchive.Image, error) {
	if err := f.limiter.Wait(ctx, host(rawURL)); err != nil {
		return nil, err
	}
	return f.next.FetchImage(ctx, rawURL)
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
