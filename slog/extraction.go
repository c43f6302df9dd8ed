package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dartisan/webscraper"
)

// Ensure LoggingDataExtractor implements webscraper.DataExtractor.
var _ webscraper.DataExtractor = (*LoggingDataExtractor)(nil)

// LoggingDataExtractor wraps a DataExtractor with logging. Page content
// is never logged, only its size.
type LoggingDataExtractor struct {
	next   webscraper.DataExtractor
	logger *slog.Logger
}

// NewLoggingDataExtractor creates a new LoggingDataExtractor.
func NewLoggingDataExtractor(next webscraper.DataExtractor, logger *slog.Logger) *LoggingDataExtractor {
	return &LoggingDataExtractor{next: next, logger: logger}
}

func (e *LoggingDataExtractor) ExtractData(ctx context.Context, content, prompt string) (v webscraper.Value, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract data",
			"content_chars", len([]rune(content)),
			"prompt", prompt,
			"kind", v.Kind(),
			"keys", v.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractData(ctx, content, prompt)
}

func (e *LoggingDataExtractor) Ping(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		e.logger.Debug("ping",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Ping(ctx)
}
