// Package htmltomarkdown converts page HTML into Markdown for the
// extraction model. Markdown keeps headings, lists and tables, which helps
// the model recover structure from listing and pricing pages.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/dartisan/webscraper"
)

// Ensure Converter implements webscraper.Converter at compile time.
var _ webscraper.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links and image sources against domain.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a Converter with CommonMark and table support.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML into Markdown. Blank input yields blank output
// so the caller can report the page as having no readable content.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	var opts []converter.ConvertOptionFunc
	if c.domain != "" {
		opts = append(opts, converter.WithDomain(c.domain))
	}

	md, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", webscraper.Errorf(webscraper.EINVALID, "failed to convert HTML: %v", err)
	}
	return strings.TrimSpace(md), nil
}
