package webscraper

import (
	"path/filepath"
	"strings"
)

// Format is an output document format.
type Format string

// Supported output formats.
const (
	FormatText  Format = "text"
	FormatWord  Format = "word"
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// DefaultFormat is used when a request does not name one.
const DefaultFormat = FormatText

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatWord, FormatPDF, FormatExcel}
}

// ParseFormat returns the format named by s. An empty string selects
// DefaultFormat. Unknown names return EUNSUPPORTED.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return DefaultFormat, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", Errorf(EUNSUPPORTED, "Unsupported format: %s", s)
	}
	return f, nil
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatWord, FormatPDF, FormatExcel:
		return true
	}
	return false
}

// Extension returns the file extension, including the dot, for f.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatWord:
		return ".docx"
	case FormatPDF:
		return ".pdf"
	case FormatExcel:
		return ".xlsx"
	}
	return ""
}

// MIME types served for generated documents.
const (
	MIMEWord        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEPDF         = "application/pdf"
	MIMEExcel       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEText        = "text/plain"
	MIMEOctetStream = "application/octet-stream"
)

var mimeTypes = map[string]string{
	".docx": MIMEWord,
	".pdf":  MIMEPDF,
	".xlsx": MIMEExcel,
	".txt":  MIMEText,
}

// MIMEType returns the media type for filename based on its extension.
// Unknown extensions map to application/octet-stream.
func MIMEType(filename string) string {
	if t, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return t
	}
	return MIMEOctetStream
}
