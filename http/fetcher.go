// Package http implements the HTTP transport of newsarchive: page and image
// fetching from the live site and the JSON API server.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/newsarchive"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how many bytes of a response are read.
const DefaultMaxBodySize = 32 << 20

// Browser-like request headers sent with every page request.
const (
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	DefaultAcceptLanguage = "ar,en-US;q=0.7,en;q=0.3"
)

// Ensure Fetcher implements newsarchive.Fetcher at compile time.
var _ newsarchive.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves article pages with a realistic browser header set.
type Fetcher struct {
	client         *http.Client
	timeout        time.Duration
	userAgent      string
	acceptLanguage string
	maxBodySize    int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
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

// WithMaxBodySize sets the largest response body accepted. Larger bodies
// fail the request. Defaults to DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:        DefaultFetchTimeout,
		userAgent:      DefaultUserAgent,
		acceptLanguage: DefaultAcceptLanguage,
		maxBodySize:    DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, _, err := f.get(ctx, url, DefaultAccept)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (f *Fetcher) get(ctx context.Context, url, accept string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", f.acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &StatusError{Code: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, "", fmt.Errorf("response from %s exceeds %d bytes", url, f.maxBodySize)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// StatusError reports a response other than 200 OK.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Code, e.URL)
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
