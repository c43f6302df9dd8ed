// Package trafilatura isolates the main content of a page using
// github.com/markusmobius/go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/dartisan/webscraper"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webscraper.Extractor at compile time.
var _ webscraper.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Tables are kept because they often
// carry the data a scrape prompt asks for; reader comments are dropped.
type Extractor struct {
	opts trafilatura.Options
}

// Option configures an Extractor.
type Option func(*trafilatura.Options)

// WithLinks keeps anchor elements in the extracted content.
func WithLinks() Option {
	return func(o *trafilatura.Options) {
		o.IncludeLinks = true
	}
}

// WithoutFallback disables the readability and dom-distiller fallbacks.
func WithoutFallback() Option {
	return func(o *trafilatura.Options) {
		o.EnableFallback = false
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
	for _, opt := range opts {
		opt(&e.opts)
	}
	return e
}

// Extract returns the main content of rawHTML. The title falls back to
// the site name when the page declares no title.
func (e *Extractor) Extract(rawHTML string) (*webscraper.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webscraper.Errorf(webscraper.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	out := &webscraper.ExtractResult{Title: result.Metadata.Title}
	if out.Title == "" {
		out.Title = result.Metadata.Sitename
	}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		out.ContentHTML = buf.String()
	}
	return out, nil
}
