// Package goquery turns HTML into plain readable text using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dartisan/webscraper"
	"golang.org/x/net/html"
)

// Ensure TextConverter implements webscraper.Converter at compile time.
var _ webscraper.Converter = (*TextConverter)(nil)

// NonContentSelector matches elements whose text is never readable content.
const NonContentSelector = "script, style, meta, link, noscript, template, iframe, svg"

// TextConverter converts HTML into a single line of whitespace-normalized text.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert strips non-content elements and returns the remaining text with
// runs of whitespace collapsed to single spaces.
func (c *TextConverter) Convert(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", webscraper.Errorf(webscraper.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(NonContentSelector).Remove()

	var parts []string
	for _, n := range doc.Nodes {
		parts = appendText(parts, n)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " "), nil
}

// appendText collects text nodes below n in document order. Separate
// nodes are kept apart so adjacent block elements do not run together.
func appendText(parts []string, n *html.Node) []string {
	if n.Type == html.TextNode {
		return append(parts, n.Data)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		parts = appendText(parts, child)
	}
	return parts
}
