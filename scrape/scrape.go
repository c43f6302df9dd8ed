package scrape

import (
	"context"
	"strings"

	"github.com/dartisan/webscraper"
)

// Ensure Scraper implements webscraper.ScrapeService at compile time.
var _ webscraper.ScrapeService = (*Scraper)(nil)

// Scraper runs a scrape request end to end.
type Scraper struct {
	Content   webscraper.ContentFetcher
	Extractor webscraper.DataExtractor
	Renderer  webscraper.DocumentRenderer
	Store     webscraper.DocumentStore
}

// Scrape fetches req.URL, extracts data for req.Prompt and stores the
// rendered document.
func (s *Scraper) Scrape(ctx context.Context, req *webscraper.ScrapeRequest) (*webscraper.ScrapeResult, error) {
	if err := webscraper.ValidateURL(req.URL); err != nil {
		return nil, err
	}
	format, err := webscraper.ParseFormat(string(req.OutputFormat))
	if err != nil {
		return nil, err
	}

	content, err := s.Content.FetchContent(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content.Text) == "" {
		return nil, webscraper.Errorf(webscraper.EINVALID, "No readable content found on the webpage.")
	}

	data, err := s.Extractor.ExtractData(ctx, content.Text, req.Prompt)
	if err != nil {
		return nil, err
	}

	doc, err := s.Renderer.RenderDocument(ctx, &webscraper.RenderRequest{
		Data:   data,
		Format: format,
		Prompt: req.Prompt,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Store.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}

	return &webscraper.ScrapeResult{
		Data:        data,
		Filename:    doc.Filename,
		DownloadURL: webscraper.DownloadPath + doc.Filename,
		MIMEType:    doc.MIMEType,
	}, nil
}
