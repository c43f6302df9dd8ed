package mock

import "github.com/dartisan/webscraper"

var _ webscraper.Converter = (*Converter)(nil)

// Converter is a mock implementation of webscraper.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
