package mock

import (
	"context"

	"github.com/fwojciec/newsarchive"
)

var _ newsarchive.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of newsarchive.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ newsarchive.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of newsarchive.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) (*newsarchive.Image, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) (*newsarchive.Image, error) {
	return f.FetchImageFn(ctx, url)
}
