package mock

import (
	"context"
	"io"
	"time"

	"github.com/dartisan/webscraper"
)

var _ webscraper.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of webscraper.Renderer.
type Renderer struct {
	RenderFn func(w io.Writer, req *webscraper.RenderRequest) error
}

func (r *Renderer) Render(w io.Writer, req *webscraper.RenderRequest) error {
	return r.RenderFn(w, req)
}

var _ webscraper.DocumentRenderer = (*DocumentRenderer)(nil)

// DocumentRenderer is a mock implementation of webscraper.DocumentRenderer.
type DocumentRenderer struct {
	RenderDocumentFn func(ctx context.Context, req *webscraper.RenderRequest) (*webscraper.RenderedDocument, error)
}

func (r *DocumentRenderer) RenderDocument(ctx context.Context, req *webscraper.RenderRequest) (*webscraper.RenderedDocument, error) {
	return r.RenderDocumentFn(ctx, req)
}

var _ webscraper.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of webscraper.DocumentStore.
type DocumentStore struct {
	SaveDocumentFn func(ctx context.Context, doc *webscraper.RenderedDocument) error
	FindDocumentFn func(ctx context.Context, filename string) (*webscraper.StoredDocument, error)
	SweepFn        func(ctx context.Context, maxAge time.Duration) (int, error)
}

func (s *DocumentStore) SaveDocument(ctx context.Context, doc *webscraper.RenderedDocument) error {
	return s.SaveDocumentFn(ctx, doc)
}

func (s *DocumentStore) FindDocument(ctx context.Context, filename string) (*webscraper.StoredDocument, error) {
	return s.FindDocumentFn(ctx, filename)
}

func (s *DocumentStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	return s.SweepFn(ctx, maxAge)
}
