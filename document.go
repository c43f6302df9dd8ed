package webscraper

import (
	"context"
	"io"
	"time"
)

// RenderRequest is the input to a document renderer.
type RenderRequest struct {
	Data        Value
	Format      Format
	Prompt      string
	GeneratedAt time.Time
}

// Timestamp returns GeneratedAt in the layout printed inside documents.
func (r *RenderRequest) Timestamp() string {
	return r.GeneratedAt.Format(TimestampLayout)
}

// RenderedDocument is a fully rendered output file held in memory.
type RenderedDocument struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Renderer writes one document format.
type Renderer interface {
	// Render writes the document for req to w.
	// Implementations must not retain req or w after returning.
	Render(w io.Writer, req *RenderRequest) error
}

// DocumentRenderer turns extracted data into a named document.
type DocumentRenderer interface {
	// RenderDocument renders req into a new document.
	// Returns EUNSUPPORTED for an unknown format and a *RenderError when
	// the format's renderer fails.
	RenderDocument(ctx context.Context, req *RenderRequest) (*RenderedDocument, error)
}

// StoredDocument describes a document persisted in the output directory.
type StoredDocument struct {
	Filename string
	Path     string
	MIMEType string
	Size     int64
	ModTime  time.Time
}

// DocumentStore manages generated documents on disk.
type DocumentStore interface {
	// SaveDocument persists doc under doc.Filename.
	SaveDocument(ctx context.Context, doc *RenderedDocument) error

	// FindDocument looks up a stored document by file name.
	// Returns EINVALID for names that are not bare file names and
	// ENOTFOUND when no such document exists.
	FindDocument(ctx context.Context, filename string) (*StoredDocument, error)

	// Sweep removes documents older than maxAge and returns how many
	// were removed. Failures on individual files do not stop the sweep.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}
