package mock

import (
	"context"

	"github.com/dartisan/webscraper"
)

var _ webscraper.DataExtractor = (*DataExtractor)(nil)

// DataExtractor is a mock implementation of webscraper.DataExtractor.
type DataExtractor struct {
	ExtractDataFn func(ctx context.Context, content, prompt string) (webscraper.Value, error)
	PingFn        func(ctx context.Context) error
}

func (e *DataExtractor) ExtractData(ctx context.Context, content, prompt string) (webscraper.Value, error) {
	return e.ExtractDataFn(ctx, content, prompt)
}

func (e *DataExtractor) Ping(ctx context.Context) error {
	return e.PingFn(ctx)
}
