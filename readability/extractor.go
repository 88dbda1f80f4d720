// Package readability provides a main-content fallback for article pages
// whose body matches none of the known selectors.
package readability

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/newsarchive"
	"github.com/go-shiori/go-readability"
)

// DefaultMinTextLength is the shortest body, in runes, accepted as content.
const DefaultMinTextLength = 200

// Ensure Extractor implements newsarchive.Extractor at compile time.
var _ newsarchive.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to find the main content of a page.
type Extractor struct {
	pageURL *url.URL
	minText int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the URL relative links are resolved against.
func WithPageURL(u *url.URL) Option {
	return func(e *Extractor) {
		e.pageURL = u
	}
}

// WithMinTextLength sets the shortest body accepted as content.
func WithMinTextLength(n int) Option {
	return func(e *Extractor) {
		e.minText = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{minText: DefaultMinTextLength}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the main content of rawHTML. Bodies shorter than the
// minimum text length return ENOTFOUND.
func (e *Extractor) Extract(rawHTML string) (*newsarchive.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsarchive.Errorf(newsarchive.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, newsarchive.Errorf(newsarchive.ENOTFOUND, "no readable content: %v", err)
	}
	if utf8.RuneCountInString(strings.TrimSpace(article.TextContent)) < e.minText {
		return nil, newsarchive.Errorf(newsarchive.ENOTFOUND, "readable content too short")
	}

	return &newsarchive.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
