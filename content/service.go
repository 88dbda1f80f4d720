// Package content fetches live article pages and turns them into
// paragraph-segmented text.
package content

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fwojciec/newsarchive"
	"golang.org/x/sync/singleflight"
)

// Cache holds reconstructed article text keyed by URL.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Get returns the cached text for url.
func (c *Cache) Get(url string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.entries[url]
	return text, ok
}

// Put stores text for url.
func (c *Cache) Put(url, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = text
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure Service implements newsarchive.ContentService at compile time.
var _ newsarchive.ContentService = (*Service)(nil)

// Service fetches an article page, selects its body and reconstructs
// paragraphs with its rule. Successful results are cached; failures map to
// placeholders and are retried on the next call.
type Service struct {
	fetcher  newsarchive.Fetcher
	selector newsarchive.ContentSelector
	rule     newsarchive.ParagraphRule
	cache    *Cache
	group    singleflight.Group
	logger   *slog.Logger
}

// NewService creates a Service. A nil cache gets a private one.
func NewService(fetcher newsarchive.Fetcher, selector newsarchive.ContentSelector, rule newsarchive.ParagraphRule, cache *Cache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		fetcher:  fetcher,
		selector: selector,
		rule:     rule,
		cache:    cache,
		logger:   logger,
	}
}

// FetchContent returns the article text at url or a placeholder.
func (s *Service) FetchContent(ctx context.Context, url string) string {
	if url == "" {
		return newsarchive.PlaceholderNoLink
	}
	if text, ok := s.cache.Get(url); ok {
		return text
	}

	// Concurrent first requests for one URL share a single fetch, which
	// must not end when the first caller goes away.
	shared := context.WithoutCancel(ctx)
	v, _, _ := s.group.Do(url, func() (any, error) {
		if text, ok := s.cache.Get(url); ok {
			return text, nil
		}
		text, ok := s.load(shared, url)
		if ok {
			s.cache.Put(url, text)
		}
		return text, nil
	})
	return v.(string)
}

func (s *Service) load(ctx context.Context, url string) (string, bool) {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("content fetch failed", "url", url, "err", err)
		return newsarchive.PlaceholderNetworkError, false
	}

	text, err := s.selector.SelectText(page)
	if err != nil {
		if newsarchive.ErrorCode(err) == newsarchive.ENOTFOUND {
			s.logger.Info("content not found", "url", url)
			return newsarchive.PlaceholderNotFound, false
		}
		s.logger.Warn("content parse failed", "url", url, "err", err)
		return newsarchive.PlaceholderParseError, false
	}

	return s.rule.Reconstruct(text), true
}
