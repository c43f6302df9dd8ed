package gofpdf

import (
	"strings"

	"github.com/dartisan/webscraper"
)

type rgb struct{ r, g, b int }

var (
	headerFill = rgb{128, 128, 128}
	headerText = rgb{245, 245, 245}
	bodyFill   = rgb{245, 245, 220}
	bodyText   = rgb{0, 0, 0}
	gridColor  = rgb{0, 0, 0}
)

// table draws t as a bordered grid. Rows that do not fit on the current
// page start a new page, which repeats the header row. A row taller than
// a whole page is split between pages line by line.
func (d *doc) table(t *webscraper.Table) {
	if len(t.Header) == 0 {
		return
	}
	pageW, _ := d.pdf.GetPageSize()
	left, top, right, _ := d.pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(t.Header))

	d.pdf.SetDrawColor(gridColor.r, gridColor.g, gridColor.b)
	d.pdf.SetLineWidth(0.3)

	header := d.wrap(t.Header, colW, true)
	freshFit := d.linesFitting(top + rowHeight(header))

	newPage := func() {
		d.pdf.AddPage()
		d.row(header, colW, true)
	}

	d.row(header, colW, true)
	for _, cells := range t.Rows {
		lines := d.wrap(cells, colW, false)
		n := lineCount(lines)
		fit := d.linesFitting(d.pdf.GetY())
		if n > fit && (n <= freshFit || fit < 1) {
			newPage()
			fit = d.linesFitting(d.pdf.GetY())
		}
		for n > fit {
			var head [][]string
			head, lines = splitRow(lines, max(fit, 1))
			d.row(head, colW, false)
			newPage()
			n = lineCount(lines)
			fit = d.linesFitting(d.pdf.GetY())
		}
		d.row(lines, colW, false)
	}
}

func (d *doc) pageBottom() float64 {
	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	return pageH - bottom
}

// linesFitting returns how many text lines a body row starting at y can
// hold above the bottom margin.
func (d *doc) linesFitting(y float64) int {
	return int((d.pageBottom() - y - 2*cellPad) / lineHeight)
}

func (d *doc) setRowFont(header bool) {
	if header {
		d.pdf.SetFont(fontFamily, "B", 12)
		return
	}
	d.pdf.SetFont(fontFamily, "", 10)
}

// wrap splits each translated cell into lines no wider than its column.
func (d *doc) wrap(cells []string, colW float64, header bool) [][]string {
	d.setRowFont(header)
	out := make([][]string, len(cells))
	for i, c := range cells {
		for _, l := range d.pdf.SplitLines([]byte(d.tr(c)), colW-2*cellPad) {
			out[i] = append(out[i], string(l))
		}
	}
	return out
}

func lineCount(cells [][]string) int {
	n := 1
	for _, c := range cells {
		n = max(n, len(c))
	}
	return n
}

func rowHeight(cells [][]string) float64 {
	return float64(lineCount(cells))*lineHeight + 2*cellPad
}

// splitRow returns the first n lines of every cell and the remainder.
func splitRow(cells [][]string, n int) (head, rest [][]string) {
	head = make([][]string, len(cells))
	rest = make([][]string, len(cells))
	for i, c := range cells {
		k := min(n, len(c))
		head[i], rest[i] = c[:k], c[k:]
	}
	return head, rest
}

// row draws one band of pre-wrapped cells.
func (d *doc) row(cells [][]string, colW float64, header bool) {
	h := rowHeight(cells)
	fill, text := bodyFill, bodyText
	if header {
		fill, text = headerFill, headerText
	}
	d.setRowFont(header)
	d.pdf.SetFillColor(fill.r, fill.g, fill.b)
	d.pdf.SetTextColor(text.r, text.g, text.b)

	// Cell writes must not trigger an automatic page break mid-row.
	autoBreak, breakMargin := d.pdf.GetAutoPageBreak()
	d.pdf.SetAutoPageBreak(false, breakMargin)
	defer d.pdf.SetAutoPageBreak(autoBreak, breakMargin)

	left, _, _, _ := d.pdf.GetMargins()
	y := d.pdf.GetY()
	for i, c := range cells {
		x := left + float64(i)*colW
		d.pdf.Rect(x, y, colW, h, "FD")
		d.pdf.SetXY(x+cellPad, y+cellPad)
		d.pdf.MultiCell(colW-2*cellPad, lineHeight, strings.Join(c, "\n"), "", "C", false)
	}
	d.pdf.SetXY(left, y+h)
	d.pdf.SetTextColor(0, 0, 0)
}
