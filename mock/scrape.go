package mock

import (
	"context"

	"github.com/dartisan/webscraper"
)

var _ webscraper.ScrapeService = (*ScrapeService)(nil)

// ScrapeService is a mock implementation of webscraper.ScrapeService.
type ScrapeService struct {
	ScrapeFn func(ctx context.Context, req *webscraper.ScrapeRequest) (*webscraper.ScrapeResult, error)
}

func (s *ScrapeService) Scrape(ctx context.Context, req *webscraper.ScrapeRequest) (*webscraper.ScrapeResult, error) {
	return s.ScrapeFn(ctx, req)
}
