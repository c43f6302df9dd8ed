// Package excelize renders extracted data as a spreadsheet using
// github.com/xuri/excelize/v2.
package excelize

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dartisan/webscraper"
	"github.com/xuri/excelize/v2"
)

// Ensure Renderer implements webscraper.Renderer at compile time.
var _ webscraper.Renderer = (*Renderer)(nil)

// SheetName is the name of the single worksheet.
const SheetName = "Scraping Results"

// FirstDataRow is the row where extracted data starts.
const FirstDataRow = 6

// MaxColumnWidth caps automatic column widths.
const MaxColumnWidth = 50

// Renderer writes .xlsx workbooks.
type Renderer struct{}

// NewRenderer returns a spreadsheet renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the workbook for req to w.
func (r *Renderer) Render(w io.Writer, req *webscraper.RenderRequest) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	s, err := newSheet(f)
	if err != nil {
		return err
	}

	s.set(1, 1, webscraper.DocumentTitle, s.titleStyle)
	s.set(1, 3, "Generated:", 0)
	s.set(2, 3, req.Timestamp(), 0)
	s.set(1, 4, "Prompt:", 0)
	s.set(2, 4, req.Prompt, 0)

	row := FirstDataRow
	if req.Data.Kind() == webscraper.KindMap {
		s.addMap(req.Data, row)
	} else {
		s.set(1, row, "Extracted Data", s.sectionStyle)
		s.set(1, row+1, req.Data.String(), 0)
	}

	s.fitColumns()
	if s.err != nil {
		return s.err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// sheet writes cells to the worksheet, remembering the first error and
// the widest value seen per column.
type sheet struct {
	f   *excelize.File
	err error

	widths map[int]int

	titleStyle   int
	sectionStyle int
	headerStyle  int
}

func newSheet(f *excelize.File) (*sheet, error) {
	s := &sheet{f: f, widths: make(map[int]int)}

	var err error
	if s.titleStyle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	}); err != nil {
		return nil, fmt.Errorf("creating title style: %w", err)
	}
	if s.sectionStyle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
	}); err != nil {
		return nil, fmt.Errorf("creating section style: %w", err)
	}
	if s.headerStyle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
	}); err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	return s, nil
}

// addMap writes the entries of m starting at row and returns the next
// free row.
func (s *sheet) addMap(m webscraper.Value, row int) int {
	for _, f := range m.Fields() {
		switch {
		case webscraper.IsTableCandidate(f.Value):
			s.set(1, row, webscraper.Title(f.Key), s.sectionStyle)
			row++
			t := webscraper.NewTable(f.Key, f.Value.Items())
			for i, h := range t.Header {
				s.set(i+1, row, h, s.headerStyle)
			}
			row++
			for _, cells := range t.Rows {
				for i, c := range cells {
					s.set(i+1, row, c, 0)
				}
				row++
			}
			row++
		case f.Value.Kind() == webscraper.KindList && f.Value.Len() > 0:
			s.set(1, row, webscraper.Title(f.Key), s.sectionStyle)
			row++
			for _, item := range f.Value.Items() {
				s.set(1, row, item.String(), 0)
				row++
			}
			row++
		default:
			s.set(1, row, webscraper.Title(f.Key), 0)
			s.set(2, row, f.Value.String(), 0)
			row++
		}
	}
	return row
}

func (s *sheet) set(col, row int, value string, style int) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetCellStr(SheetName, cell, value); err != nil {
		s.err = fmt.Errorf("setting %s: %w", cell, err)
		return
	}
	if style != 0 {
		if err := s.f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			s.err = fmt.Errorf("styling %s: %w", cell, err)
			return
		}
	}
	if n := utf8.RuneCountInString(value); n > s.widths[col] {
		s.widths[col] = n
	}
}

func (s *sheet) fitColumns() {
	for col, n := range s.widths {
		if s.err != nil {
			return
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			s.err = err
			return
		}
		width := min(n+2, MaxColumnWidth)
		if err := s.f.SetColWidth(SheetName, name, name, float64(width)); err != nil {
			s.err = fmt.Errorf("sizing column %s: %w", name, err)
		}
	}
}
