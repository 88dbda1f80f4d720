package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/newsarchive"
	"github.com/fwojciec/newsarchive/mock"
	naslog "github.com/fwojciec/newsarchive/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingContentService_FetchContent(t *testing.T) {
	t.Parallel()

	t.Run("logs content at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ContentService{
			FetchContentFn: func(ctx context.Context, url string) string {
				return "نص"
			},
		}

		svc := naslog.NewLoggingContentService(inner, logger)
		text := svc.FetchContent(context.Background(), "https://example.com/a")

		assert.Equal(t, "نص", text)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "chars=2")
		assert.Contains(t, output, "placeholder=false")
	})

	t.Run("logs placeholder at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ContentService{
			FetchContentFn: func(ctx context.Context, url string) string {
				return newsarchive.PlaceholderNetworkError
			},
		}

		svc := naslog.NewLoggingContentService(inner, logger)
		text := svc.FetchContent(context.Background(), "https://example.com/a")

		assert.Equal(t, newsarchive.PlaceholderNetworkError, text)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "placeholder=true")
	})
}

func TestLoggingArticleExtractor_ExtractArticles(t *testing.T) {
	t.Parallel()

	t.Run("logs article count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArticleExtractor{
			ExtractArticlesFn: func(html string) ([]*newsarchive.Article, error) {
				return []*newsarchive.Article{{ID: 1}, {ID: 2}}, nil
			},
		}

		extractor := naslog.NewLoggingArticleExtractor(inner, logger)
		articles, err := extractor.ExtractArticles("<html></html>")

		require.NoError(t, err)
		assert.Len(t, articles, 2)
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArticleExtractor{
			ExtractArticlesFn: func(html string) ([]*newsarchive.Article, error) {
				return nil, errors.New("bad page")
			},
		}

		extractor := naslog.NewLoggingArticleExtractor(inner, logger)
		_, err := extractor.ExtractArticles("")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="bad page"`)
	})
}
