package content

import (
	"context"

	"github.com/fwojciec/newsarchive"
)

// Ensure MarkdownRenderer implements newsarchive.MarkdownRenderer at compile time.
var _ newsarchive.MarkdownRenderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer renders the body of a live article as Markdown.
// Unlike Service it reports failures to the caller.
type MarkdownRenderer struct {
	fetcher   newsarchive.Fetcher
	selector  newsarchive.ContentSelector
	converter newsarchive.Converter
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(fetcher newsarchive.Fetcher, selector newsarchive.ContentSelector, converter newsarchive.Converter) *MarkdownRenderer {
	return &MarkdownRenderer{fetcher: fetcher, selector: selector, converter: converter}
}

// Render fetches url and converts its cleaned body to Markdown.
func (r *MarkdownRenderer) Render(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", newsarchive.Errorf(newsarchive.EINVALID, "article has no link")
	}
	page, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", newsarchive.Errorf(newsarchive.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	body, err := r.selector.SelectHTML(page)
	if err != nil {
		return "", err
	}
	return r.converter.Convert(body)
}
