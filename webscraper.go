// Package webscraper turns a web page into a structured document.
// It fetches and cleans a page, asks a language model to extract the data
// described by a natural-language prompt, and renders the extracted value
// as plain text, a Word document, a PDF or a spreadsheet.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gofpdf/, excelize/, gemini/).
package webscraper

// DocumentTitle is the title every rendered document starts with.
const DocumentTitle = "Web Scraping Results"

// TimestampLayout formats the generation time shown inside documents.
const TimestampLayout = "2006-01-02 15:04:05"

// UserAgent is sent by page fetchers. Some sites refuse requests that do
// not look like they come from a browser.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
