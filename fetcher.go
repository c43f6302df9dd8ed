package webscraper

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// Fetcher retrieves raw HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Content is the cleaned, readable text of a fetched page.
type Content struct {
	URL   string
	Title string
	Text  string

	// Truncated is set when Text was cut to the configured maximum length.
	Truncated bool
}

// ContentFetcher fetches a page and reduces it to readable text.
type ContentFetcher interface {
	// FetchContent fetches url and returns its cleaned text.
	FetchContent(ctx context.Context, url string) (*Content, error)
}

var (
	localhostPortRE = regexp.MustCompile(`localhost:\d+`)
	loopbackRE      = regexp.MustCompile(`127\.0\.0\.1`)
)

// ValidateURL returns EINVALID unless rawURL is an absolute http or https
// URL that does not point at a local development address.
func ValidateURL(rawURL string) error {
	invalid := Errorf(EINVALID, "Invalid URL. Please provide a valid HTTP/HTTPS URL.")

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return invalid
	}
	if localhostPortRE.MatchString(rawURL) || loopbackRE.MatchString(rawURL) || strings.Contains(rawURL, "file://") {
		return invalid
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return invalid
	}
	return nil
}
