package http

import (
	"context"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/newsarchive"
)

// DefaultImageTimeout is the default timeout for image downloads.
const DefaultImageTimeout = 15 * time.Second

// DefaultImageExt is used when neither the URL nor the response names a type.
const DefaultImageExt = ".jpg"

const imageAccept = "image/avif,image/webp,image/apng,image/*,*/*;q=0.8"

// Ensure ImageFetcher implements newsarchive.ImageFetcher at compile time.
var _ newsarchive.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads article images.
type ImageFetcher struct {
	fetcher *Fetcher
}

// NewImageFetcher creates an ImageFetcher. The timeout defaults to
// DefaultImageTimeout.
func NewImageFetcher(opts ...Option) *ImageFetcher {
	opts = append([]Option{WithTimeout(DefaultImageTimeout)}, opts...)
	return &ImageFetcher{fetcher: NewFetcher(opts...)}
}

// FetchImage downloads the image at rawURL.
func (f *ImageFetcher) FetchImage(ctx context.Context, rawURL string) (*newsarchive.Image, error) {
	if rawURL == "" {
		return nil, newsarchive.Errorf(newsarchive.EINVALID, "image URL required")
	}
	data, contentType, err := f.fetcher.get(ctx, rawURL, imageAccept)
	if err != nil {
		return nil, err
	}
	return &newsarchive.Image{
		URL:  rawURL,
		Data: data,
		Ext:  ImageExt(rawURL, contentType),
	}, nil
}

// ImageExt derives a file extension from the URL path, then the content
// type, defaulting to DefaultImageExt.
func ImageExt(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); isImageExt(ext) {
			return ext
		}
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "image/png":
			return ".png"
		case "image/gif":
			return ".gif"
		case "image/webp":
			return ".webp"
		case "image/jpeg":
			return ".jpg"
		}
	}
	return DefaultImageExt
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp":
		return true
	}
	return false
}
