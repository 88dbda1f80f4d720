package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsarchive"
)

// Ensure LoggingContentService implements newsarchive.ContentService.
var _ newsarchive.ContentService = (*LoggingContentService)(nil)

// LoggingContentService wraps a ContentService and logs each lookup.
// Placeholders are logged at warn level since the service itself never
// returns an error.
type LoggingContentService struct {
	next   newsarchive.ContentService
	logger *slog.Logger
}

// NewLoggingContentService creates a new LoggingContentService.
func NewLoggingContentService(next newsarchive.ContentService, logger *slog.Logger) *LoggingContentService {
	return &LoggingContentService{next: next, logger: logger}
}

// FetchContent delegates to the wrapped service and logs the outcome.
func (s *LoggingContentService) FetchContent(ctx context.Context, url string) (text string) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if newsarchive.IsPlaceholder(text) {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "fetch content",
			"url", url,
			"chars", len([]rune(text)),
			"placeholder", newsarchive.IsPlaceholder(text),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.FetchContent(ctx, url)
}

// Ensure LoggingArticleExtractor implements newsarchive.ArticleExtractor.
var _ newsarchive.ArticleExtractor = (*LoggingArticleExtractor)(nil)

// LoggingArticleExtractor wraps an ArticleExtractor with logging.
type LoggingArticleExtractor struct {
	next   newsarchive.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingArticleExtractor creates a new LoggingArticleExtractor.
func NewLoggingArticleExtractor(next newsarchive.ArticleExtractor, logger *slog.Logger) *LoggingArticleExtractor {
	return &LoggingArticleExtractor{next: next, logger: logger}
}

// ExtractArticles delegates to the wrapped extractor and logs the count.
func (e *LoggingArticleExtractor) ExtractArticles(html string) (articles []*newsarchive.Article, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract articles",
			"bytes", len(html),
			"count", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractArticles(html)
}
