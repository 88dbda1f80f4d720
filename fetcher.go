package newsarchive

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the body of the page at url. Transport failures and
	// non-success statuses are errors. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Image is a downloaded picture.
type Image struct {
	URL  string
	Data []byte

	// Ext is the file extension including the leading dot, e.g. ".jpg".
	Ext string
}

// ImageFetcher downloads images.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (*Image, error)
}
