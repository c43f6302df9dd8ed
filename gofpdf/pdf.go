// Package gofpdf renders extracted data as a PDF using
// github.com/jung-kurt/gofpdf.
package gofpdf

import (
	"io"
	"strings"

	"github.com/dartisan/webscraper"
	"github.com/jung-kurt/gofpdf"
)

// Ensure Renderer implements webscraper.Renderer at compile time.
var _ webscraper.Renderer = (*Renderer)(nil)

const (
	fontFamily = "Helvetica"
	margin     = 20.0 // mm
	lineHeight = 5.5  // mm
	cellPad    = 1.5  // mm
)

// Renderer writes US-Letter PDF documents. Only the first table candidate
// in the data is laid out as a table; everything else is written as
// indented text.
type Renderer struct {
	compress bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCompression toggles content stream compression. Defaults to true.
func WithCompression(on bool) Option {
	return func(r *Renderer) {
		r.compress = on
	}
}

// NewRenderer returns a PDF renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the PDF for req to w.
func (r *Renderer) Render(w io.Writer, req *webscraper.RenderRequest) error {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(req.GeneratedAt)
	pdf.SetModificationDate(req.GeneratedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(webscraper.DocumentTitle, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	d := &doc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 12, webscraper.DocumentTitle, "", 1, "C", false, 0, "")
	pdf.Ln(8)

	d.heading("Scraping Details")
	d.line(Line{Label: "Generated:", Text: req.Timestamp()})
	d.line(Line{Label: "Prompt:", Text: req.Prompt})
	pdf.Ln(8)

	d.heading("Extracted Data")
	if table := webscraper.FindTable(req.Data); table != nil {
		d.table(table)
	} else {
		for _, l := range Narrative(req.Data) {
			d.line(l)
		}
	}

	return pdf.Output(w)
}

// doc wraps a gofpdf document with the text translator for its core font.
type doc struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (d *doc) heading(text string) {
	d.pdf.SetFont(fontFamily, "B", 14)
	d.pdf.CellFormat(0, 9, d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.Ln(2)
}

// line writes an indented line with an optional bold label.
func (d *doc) line(l Line) {
	d.pdf.SetFont(fontFamily, "", 11)
	if l.Indent > 0 {
		d.pdf.Write(lineHeight, d.tr(strings.Repeat(nbsp, 4*l.Indent)))
	}
	if l.Label != "" {
		d.pdf.SetFont(fontFamily, "B", 11)
		d.pdf.Write(lineHeight, d.tr(l.Label))
		d.pdf.SetFont(fontFamily, "", 11)
		if l.Text != "" {
			d.pdf.Write(lineHeight, " ")
		}
	}
	if l.Text != "" {
		d.pdf.Write(lineHeight, d.tr(l.Text))
	}
	d.pdf.Ln(lineHeight)
}
