// Package readability isolates the main content of a page using
// github.com/go-shiori/go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/dartisan/webscraper"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webscraper.Extractor at compile time.
var _ webscraper.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct {
	base *url.URL
}

// NewExtractor creates a new Extractor. When base is non-nil, relative
// links in the content are resolved against it.
func NewExtractor(base *url.URL) *Extractor {
	return &Extractor{base: base}
}

// Extract returns the main content of rawHTML. The title falls back to
// the site name.
func (e *Extractor) Extract(rawHTML string) (*webscraper.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webscraper.Errorf(webscraper.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.base)
	if err != nil {
		return nil, err
	}

	title := article.Title
	if title == "" {
		title = article.SiteName
	}
	return &webscraper.ExtractResult{
		Title:       title,
		ContentHTML: article.Content,
	}, nil
}
