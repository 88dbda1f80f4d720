package mock

import (
	"context"

	"github.com/fwojciec/newsarchive"
)

var _ newsarchive.ContentService = (*ContentService)(nil)

// ContentService is a mock implementation of newsarchive.ContentService.
type ContentService struct {
	FetchContentFn func(ctx context.Context, url string) string
}

func (s *ContentService) FetchContent(ctx context.Context, url string) string {
	return s.FetchContentFn(ctx, url)
}

var _ newsarchive.ContentSelector = (*ContentSelector)(nil)

// ContentSelector is a mock implementation of newsarchive.ContentSelector.
type ContentSelector struct {
	SelectTextFn func(html string) (string, error)
	SelectHTMLFn func(html string) (string, error)
}

func (s *ContentSelector) SelectText(html string) (string, error) {
	return s.SelectTextFn(html)
}

func (s *ContentSelector) SelectHTML(html string) (string, error) {
	return s.SelectHTMLFn(html)
}

var _ newsarchive.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newsarchive.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*newsarchive.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*newsarchive.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ newsarchive.Converter = (*Converter)(nil)

// Converter is a mock implementation of newsarchive.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ newsarchive.MarkdownRenderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer is a mock implementation of newsarchive.MarkdownRenderer.
type MarkdownRenderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
}

func (r *MarkdownRenderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}
