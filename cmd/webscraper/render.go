package main

import (
	"fmt"
	"os"

	"github.com/dartisan/webscraper"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	defer f.Close()

	data, err := webscraper.DecodeValue(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", c.File, errorText(err))
		return err
	}

	doc, err := deps.Renderer.RenderDocument(deps.Ctx, &webscraper.RenderRequest{
		Data:   data,
		Format: webscraper.Format(c.Format),
		Prompt: c.Prompt,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if err := deps.Store.SaveDocument(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s\n", deps.Globals.DocumentPath(doc.Filename))
	return nil
}
