// Package etree renders extracted data as a Word (.docx) document. The
// WordprocessingML parts are built with github.com/beevik/etree.
package etree

import (
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/dartisan/webscraper"
)

// Ensure Renderer implements webscraper.Renderer at compile time.
var _ webscraper.Renderer = (*Renderer)(nil)

// Paragraph styles defined in word/styles.xml.
const (
	StyleTitle      = "Title"
	StyleHeading1   = "Heading1"
	StyleHeading2   = "Heading2"
	StyleListBullet = "ListBullet"
)

// BulletMarker prefixes every bullet paragraph.
const BulletMarker = "•"

const (
	bulletIndent     = 720 // twips
	bulletLevelShift = 360
)

// Renderer writes Word documents.
type Renderer struct{}

// NewRenderer returns a Word document renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the .docx package for req to w.
func (r *Renderer) Render(w io.Writer, req *webscraper.RenderRequest) error {
	b := newBody()

	b.paragraph(StyleTitle, true, webscraper.DocumentTitle)
	b.paragraph(StyleHeading1, false, "Scraping Details")
	b.paragraph("", false, "Generated: "+req.Timestamp())
	b.paragraph("", false, "Prompt: "+req.Prompt)
	b.paragraph(StyleHeading1, false, "Extracted Data")

	if req.Data.Kind() == webscraper.KindMap {
		b.addMap(req.Data, 0)
	} else {
		b.paragraph("", false, req.Data.String())
	}

	return writePackage(w, b.finish(), req)
}

// body accumulates paragraphs of word/document.xml.
type body struct {
	doc  *etree.Document
	body *etree.Element
}

func newBody() *body {
	doc := newPart()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsWordML)
	root.CreateAttr("xmlns:r", nsOfficeRels)
	return &body{doc: doc, body: root.CreateElement("w:body")}
}

func (b *body) addMap(m webscraper.Value, level int) {
	for _, f := range m.Fields() {
		switch f.Value.Kind() {
		case webscraper.KindMap:
			if level == 0 {
				b.paragraph(StyleHeading2, false, webscraper.Title(f.Key))
			} else {
				b.bullet(level, f.Key+":")
			}
			b.addMap(f.Value, level+1)
		case webscraper.KindList:
			b.bullet(level, f.Key+":")
			for _, item := range f.Value.Items() {
				if item.Kind() == webscraper.KindMap {
					b.addMap(item, level+1)
				} else {
					b.bullet(level+1, item.String())
				}
			}
		default:
			b.bullet(level, f.Key+": "+f.Value.String())
		}
	}
}

func (b *body) paragraph(style string, centered bool, text string) *etree.Element {
	p := b.body.CreateElement("w:p")
	if style != "" || centered {
		pPr := p.CreateElement("w:pPr")
		if style != "" {
			pPr.CreateElement("w:pStyle").CreateAttr("w:val", style)
		}
		if centered {
			pPr.CreateElement("w:jc").CreateAttr("w:val", "center")
		}
	}
	appendRun(p, text)
	return p
}

func (b *body) bullet(level int, text string) {
	p := b.body.CreateElement("w:p")
	pPr := p.CreateElement("w:pPr")
	pPr.CreateElement("w:pStyle").CreateAttr("w:val", StyleListBullet)
	pPr.CreateElement("w:ind").CreateAttr("w:left", strconv.Itoa(bulletIndent+bulletLevelShift*level))
	appendRun(p, BulletMarker+" "+text)
}

// finish appends the section properties and returns the document part.
func (b *body) finish() *etree.Document {
	sectPr := b.body.CreateElement("w:sectPr")
	pgSz := sectPr.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", "12240")
	pgSz.CreateAttr("w:h", "15840")
	pgMar := sectPr.CreateElement("w:pgMar")
	for _, side := range []string{"w:top", "w:right", "w:bottom", "w:left"} {
		pgMar.CreateAttr(side, "1440")
	}
	pgMar.CreateAttr("w:header", "720")
	pgMar.CreateAttr("w:footer", "720")
	pgMar.CreateAttr("w:gutter", "0")
	return b.doc
}

// appendRun adds a run holding text to p. Line breaks become <w:br/>.
func appendRun(p *etree.Element, text string) {
	r := p.CreateElement("w:r")
	text = strings.ReplaceAll(sanitizeXML(text), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			r.CreateElement("w:br")
		}
		if line == "" {
			continue
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(line)
	}
}

// sanitizeXML drops runes that cannot appear in an XML 1.0 document.
func sanitizeXML(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r >= 0x20 && r <= 0xD7FF:
			return r
		case r >= 0xE000 && r <= 0xFFFD:
			return r
		case r >= 0x10000 && r <= 0x10FFFF:
			return r
		}
		return -1
	}, s)
}
