// Package rod fetches article pages through a headless Chrome browser for
// pages that need JavaScript to render their body.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/newsarchive"
	"github.com/go-rod/rod/lib/proto"
)

// Defaults for browser fetches.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultAcceptLanguage = "ar,en-US;q=0.7,en;q=0.3"
)

// Ensure Fetcher implements newsarchive.Fetcher at compile time.
var _ newsarchive.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser        *browser
	timeout        time.Duration
	userAgent      string
	acceptLanguage string
	maxPages       int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each page load.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent. The Accept-Language
// header is only sent along with an override.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithAcceptLanguage overrides the Accept-Language header.
func WithAcceptLanguage(lang string) Option {
	return func(f *Fetcher) {
		f.acceptLanguage = lang
	}
}

// WithMaxPages sets how many pages a browser renders before it is
// replaced. Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxPages = n
		}
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:        DefaultTimeout,
		acceptLanguage: DefaultAcceptLanguage,
		maxPages:       DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := newBrowser(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b, err := f.browser.acquire()
	if err != nil {
		return "", newsarchive.Errorf(newsarchive.EUNAVAILABLE, "%v", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      f.userAgent,
			AcceptLanguage: f.acceptLanguage,
		}); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.close()
}
