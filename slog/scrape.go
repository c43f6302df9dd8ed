package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dartisan/webscraper"
)

// Ensure LoggingScrapeService implements webscraper.ScrapeService.
var _ webscraper.ScrapeService = (*LoggingScrapeService)(nil)

// LoggingScrapeService wraps a ScrapeService with logging.
type LoggingScrapeService struct {
	next   webscraper.ScrapeService
	logger *slog.Logger
}

// NewLoggingScrapeService creates a new LoggingScrapeService.
func NewLoggingScrapeService(next webscraper.ScrapeService, logger *slog.Logger) *LoggingScrapeService {
	return &LoggingScrapeService{next: next, logger: logger}
}

func (s *LoggingScrapeService) Scrape(ctx context.Context, req *webscraper.ScrapeRequest) (result *webscraper.ScrapeResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", req.URL, "format", req.OutputFormat, "duration", time.Since(begin)}
		if result != nil {
			attrs = append(attrs, "filename", result.Filename)
		}
		if err != nil {
			s.logger.Error("scrape failed", append(attrs, "err", err)...)
			return
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, req)
}
