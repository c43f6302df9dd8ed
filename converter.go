package webscraper

// Converter turns HTML into the text handed to the extraction model.
type Converter interface {
	// Convert transforms HTML content into plain text or Markdown.
	Convert(html string) (string, error)
}
