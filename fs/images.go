package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/newsarchive"
)

// Image cache layout defaults.
const (
	UnknownDateDir  = "unknown_date"
	DefaultImageExt = ".jpg"
)

// ImageCache stores article images under <dir>/<date>/<id>_<stem><ext>.
type ImageCache struct {
	dir     string
	fetcher newsarchive.ImageFetcher
}

// NewImageCache creates an ImageCache rooted at dir.
func NewImageCache(dir string, fetcher newsarchive.ImageFetcher) *ImageCache {
	return &ImageCache{dir: dir, fetcher: fetcher}
}

// Path returns where the image of a would be stored.
func (c *ImageCache) Path(a *newsarchive.Article) string {
	base := ""
	if u, err := url.Parse(a.ImageURL); err == nil {
		base = path.Base(u.Path)
	}
	if base == "" || base == "." || base == "/" {
		base = fmt.Sprintf("article_%d", a.ID)
	}

	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = DefaultImageExt
	}

	date := strings.ReplaceAll(a.DateOr(UnknownDateDir), "/", "-")
	return filepath.Join(c.dir, date, fmt.Sprintf("%d_%s%s", a.ID, stem, ext))
}

// Download fetches the image of a into the cache. It reports false without
// fetching when the file exists and force is not set.
func (c *ImageCache) Download(ctx context.Context, a *newsarchive.Article, force bool) (string, bool, error) {
	if a.ImageURL == "" {
		return "", false, newsarchive.Errorf(newsarchive.EINVALID, "article %d has no image", a.ID)
	}

	dest := c.Path(a)
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return dest, false, nil
		}
	}

	img, err := c.fetcher.FetchImage(ctx, a.ImageURL)
	if err != nil {
		return dest, false, err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return dest, false, err
	}
	if err := os.WriteFile(dest, img.Data, 0644); err != nil {
		return dest, false, err
	}
	return dest, true, nil
}
