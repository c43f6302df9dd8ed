package webscraper

import (
	"fmt"
	"regexp"
	"time"
)

// FilenamePrefix starts every generated document name.
const FilenamePrefix = "scrape_result_"

var filenameRE = regexp.MustCompile(`^scrape_result_\d{8}_\d{6}_[0-9a-f]{8}\.(txt|docx|pdf|xlsx)$`)

// NewFilename returns the name of a document generated at t with the
// given 8-character id, e.g. scrape_result_20240115_143022_a1b2c3d4.pdf.
func NewFilename(t time.Time, id string, f Format) string {
	return fmt.Sprintf("%s%s_%s%s", FilenamePrefix, t.Format("20060102_150405"), id, f.Extension())
}

// IsGeneratedFilename reports whether name matches the generated
// document name grammar.
func IsGeneratedFilename(name string) bool {
	return filenameRE.MatchString(name)
}
