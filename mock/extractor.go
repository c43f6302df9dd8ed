package mock

import "github.com/dartisan/webscraper"

var _ webscraper.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webscraper.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*webscraper.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*webscraper.ExtractResult, error) {
	return e.ExtractFn(html)
}
