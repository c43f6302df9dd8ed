package webscraper

import "context"

// ScrapeRequest asks for url to be scraped according to prompt and the
// result rendered in OutputFormat.
type ScrapeRequest struct {
	URL          string `json:"url" validate:"required,url"`
	Prompt       string `json:"prompt" validate:"required,min=1,max=1000"`
	OutputFormat Format `json:"output_format" validate:"omitempty,oneof=word pdf excel text"`
}

// ScrapeResult is the outcome of a successful scrape.
type ScrapeResult struct {
	Data        Value
	Filename    string
	DownloadURL string
	MIMEType    string
}

// DownloadPath is the URL path prefix under which documents are served.
const DownloadPath = "/api/download/"

// ScrapeService runs the fetch, extract, render and store pipeline.
type ScrapeService interface {
	// Scrape runs the pipeline for req.
	// Returns EINVALID for a rejected URL or a page without readable text
	// and EUNSUPPORTED for an unknown output format.
	Scrape(ctx context.Context, req *ScrapeRequest) (*ScrapeResult, error)
}
