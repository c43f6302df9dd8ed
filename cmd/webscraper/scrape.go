package main

import (
	"encoding/json"
	"fmt"

	"github.com/dartisan/webscraper"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result, err := deps.Scraper.Scrape(deps.Ctx, &webscraper.ScrapeRequest{
		URL:          c.URL,
		Prompt:       c.Prompt,
		OutputFormat: webscraper.Format(c.Format),
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(data))
	}
	fmt.Fprintf(deps.Stdout, "Saved %s\n", deps.Globals.DocumentPath(result.Filename))
	return nil
}
