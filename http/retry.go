package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/newsarchive"
)

// DefaultRetryDelays returns the backoff delays between fetch attempts:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure RetryFetcher implements newsarchive.Fetcher at compile time.
var _ newsarchive.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries transient fetch failures with a fixed backoff
// schedule. One retry is made per delay.
type RetryFetcher struct {
	next   newsarchive.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher wraps next. A nil delays slice uses DefaultRetryDelays.
func NewRetryFetcher(next newsarchive.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch delegates to the wrapped fetcher until it succeeds, fails with a
// permanent error, or the retries are used up.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err
		if attempt >= len(f.delays) || !Retryable(err) {
			break
		}

		f.logger.Debug("retry fetch", "url", url, "attempt", attempt+2, "err", err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}
	return "", lastErr
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}

// Retryable reports whether err may succeed on another attempt. Context
// errors and client-side HTTP statuses other than 429 are permanent.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return true
}
