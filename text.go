package webscraper

import (
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title title-cases a mapping key for use as a heading. Every run of
// letters is cased on its own, so separators such as '_', '-', digits
// and apostrophes all start a new word: "product_name" -> "Product_Name".
func Title(s string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	b.Grow(len(s))
	start := -1 // start of the current letter run, or -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

// TextRenderer renders extracted data as an indented plain-text report.
type TextRenderer struct{}

// Render writes the report for req to w.
func (TextRenderer) Render(w io.Writer, req *RenderRequest) error {
	lines := []string{
		strings.Repeat("=", 50),
		strings.ToUpper(DocumentTitle),
		strings.Repeat("=", 50),
		"",
		"Generated: " + req.Timestamp(),
		"Prompt: " + req.Prompt,
		"",
		"EXTRACTED DATA:",
		strings.Repeat("-", 20),
		"",
	}

	if req.Data.Kind() == KindMap {
		lines = appendTextMap(lines, req.Data, 0)
	} else {
		lines = append(lines, req.Data.String())
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func appendTextMap(lines []string, m Value, indent int) []string {
	pad := strings.Repeat("  ", indent)
	for _, f := range m.Fields() {
		key := strings.ToUpper(f.Key)
		switch f.Value.Kind() {
		case KindMap:
			lines = append(lines, pad+key+":")
			lines = appendTextMap(lines, f.Value, indent+1)
			lines = append(lines, "")
		case KindList:
			lines = append(lines, pad+key+":")
			for i, item := range f.Value.Items() {
				n := strconv.Itoa(i + 1)
				if item.Kind() == KindMap {
					lines = append(lines, pad+"  "+n+".")
					lines = appendTextMap(lines, item, indent+2)
				} else {
					lines = append(lines, pad+"  "+n+". "+item.String())
				}
			}
			lines = append(lines, "")
		default:
			lines = append(lines, pad+key+": "+f.Value.String())
		}
	}
	return lines
}
