package gofpdf

import "github.com/dartisan/webscraper"

const (
	nbsp   = "\u00a0"
	bullet = "•"
)

// Line is one line of the narrative layout.
type Line struct {
	Indent int
	Label  string // written bold
	Text   string
}

// Narrative lays out data as indented lines. Mapping entries holding a
// container become a "key:" label followed by the container one level
// deeper; scalar entries become "key: value". Sequence elements are
// bullets.
func Narrative(data webscraper.Value) []Line {
	return appendNarrative(nil, data, 0)
}

func appendNarrative(lines []Line, v webscraper.Value, indent int) []Line {
	switch v.Kind() {
	case webscraper.KindMap:
		for _, f := range v.Fields() {
			if f.Value.IsContainer() {
				lines = append(lines, Line{Indent: indent, Label: f.Key + ":"})
				lines = appendNarrative(lines, f.Value, indent+1)
			} else {
				lines = append(lines, Line{Indent: indent, Label: f.Key + ":", Text: f.Value.String()})
			}
		}
	case webscraper.KindList:
		for _, item := range v.Items() {
			if item.IsContainer() {
				lines = append(lines, Line{Indent: indent, Text: bullet})
				lines = appendNarrative(lines, item, indent+1)
			} else {
				lines = append(lines, Line{Indent: indent, Text: bullet + " " + item.String()})
			}
		}
	default:
		lines = append(lines, Line{Indent: indent, Text: v.String()})
	}
	return lines
}
