// Package slog wraps webscraper services with structured logging using log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dartisan/webscraper"
)

// Ensure LoggingFetcher implements webscraper.Fetcher.
var _ webscraper.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   webscraper.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webscraper.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
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

// Ensure LoggingContentFetcher implements webscraper.ContentFetcher.
var _ webscraper.ContentFetcher = (*LoggingContentFetcher)(nil)

// LoggingContentFetcher wraps a ContentFetcher with logging. Truncation
// is logged as a warning.
type LoggingContentFetcher struct {
	next   webscraper.ContentFetcher
	logger *slog.Logger
}

// NewLoggingContentFetcher creates a new LoggingContentFetcher.
func NewLoggingContentFetcher(next webscraper.ContentFetcher, logger *slog.Logger) *LoggingContentFetcher {
	return &LoggingContentFetcher{next: next, logger: logger}
}

// FetchContent logs the size of the readable text and delegates.
func (f *LoggingContentFetcher) FetchContent(ctx context.Context, url string) (content *webscraper.Content, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin), "err", err}
		if content != nil {
			attrs = append(attrs, "title", content.Title, "chars", len([]rune(content.Text)))
			if content.Truncated {
				f.logger.Warn("content truncated", "url", url)
			}
		}
		f.logger.Info("fetch content", attrs...)
	}(time.Now())
	return f.next.FetchContent(ctx, url)
}
