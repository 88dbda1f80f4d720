package mock

import (
	"io"

	"github.com/fwojciec/newsarchive"
)

var _ newsarchive.CaptureDecoder = (*CaptureDecoder)(nil)

// CaptureDecoder is a mock implementation of newsarchive.CaptureDecoder.
type CaptureDecoder struct {
	DecodeFn func(r io.Reader) (string, error)
}

func (d *CaptureDecoder) Decode(r io.Reader) (string, error) {
	return d.DecodeFn(r)
}

var _ newsarchive.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of newsarchive.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticlesFn func(html string) ([]*newsarchive.Article, error)
}

func (e *ArticleExtractor) ExtractArticles(html string) ([]*newsarchive.Article, error) {
	return e.ExtractArticlesFn(html)
}
