package mock

import (
	"context"

	"github.com/dartisan/webscraper"
)

var _ webscraper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webscraper.Fetcher.
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

var _ webscraper.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher is a mock implementation of webscraper.ContentFetcher.
type ContentFetcher struct {
	FetchContentFn func(ctx context.Context, url string) (*webscraper.Content, error)
}

func (f *ContentFetcher) FetchContent(ctx context.Context, url string) (*webscraper.Content, error) {
	return f.FetchContentFn(ctx, url)
}
