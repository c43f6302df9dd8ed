// Package scrape runs the scrape pipeline: fetch a page, reduce it to
// readable text, extract data with a language model, render the result
// and store the document.
package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/dartisan/webscraper"
)

// DefaultMaxLength is the default cap, in characters, on text handed to
// the extraction model.
const DefaultMaxLength = 100000

// Ensure ContentFetcher implements webscraper.ContentFetcher at compile time.
var _ webscraper.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher fetches a page and converts it to text. Extractors are
// tried in order to isolate the main content; when none yields content
// the whole page is converted.
type ContentFetcher struct {
	Fetcher    webscraper.Fetcher
	Extractors []webscraper.Extractor
	Converter  webscraper.Converter
	MaxLength  int
}

// FetchContent fetches url and returns its readable text.
func (c *ContentFetcher) FetchContent(ctx context.Context, url string) (*webscraper.Content, error) {
	html, err := c.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	content := &webscraper.Content{URL: url}
	body := html
	for _, ex := range c.Extractors {
		res, err := ex.Extract(html)
		if err != nil || strings.TrimSpace(res.ContentHTML) == "" {
			continue
		}
		body = res.ContentHTML
		content.Title = res.Title
		break
	}

	text, err := c.Converter.Convert(body)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", url, err)
	}
	content.Text, content.Truncated = truncate(strings.TrimSpace(text), c.maxLength())
	return content, nil
}

func (c *ContentFetcher) maxLength() int {
	if c.MaxLength > 0 {
		return c.MaxLength
	}
	return DefaultMaxLength
}

// truncate cuts s to max characters and marks the cut with "...".
func truncate(s string, max int) (string, bool) {
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + "...", true
		}
		n++
	}
	return s, false
}
