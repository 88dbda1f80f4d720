package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsarchive"
)

// Ensure LoggingFetcher implements newsarchive.Fetcher.
var _ newsarchive.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging of every page request.
type LoggingFetcher struct {
	next   newsarchive.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next newsarchive.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingImageFetcher implements newsarchive.ImageFetcher.
var _ newsarchive.ImageFetcher = (*LoggingImageFetcher)(nil)

// LoggingImageFetcher wraps an ImageFetcher with logging.
type LoggingImageFetcher struct {
	next   newsarchive.ImageFetcher
	logger *slog.Logger
}

// NewLoggingImageFetcher creates a new LoggingImageFetcher.
func NewLoggingImageFetcher(next newsarchive.ImageFetcher, logger *slog.Logger) *LoggingImageFetcher {
	return &LoggingImageFetcher{next: next, logger: logger}
}

// FetchImage delegates to the wrapped fetcher and logs the operation.
func (f *LoggingImageFetcher) FetchImage(ctx context.Context, url string) (img *newsarchive.Image, err error) {
	defer func(begin time.Time) {
		var size int
		if img != nil {
			size = len(img.Data)
		}
		f.logger.Info("fetch image",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchImage(ctx, url)
}
