package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dartisan/webscraper"
)

// Ensure LoggingDocumentRenderer implements webscraper.DocumentRenderer.
var _ webscraper.DocumentRenderer = (*LoggingDocumentRenderer)(nil)

// LoggingDocumentRenderer wraps a DocumentRenderer with logging.
type LoggingDocumentRenderer struct {
	next   webscraper.DocumentRenderer
	logger *slog.Logger
}

// NewLoggingDocumentRenderer creates a new LoggingDocumentRenderer.
func NewLoggingDocumentRenderer(next webscraper.DocumentRenderer, logger *slog.Logger) *LoggingDocumentRenderer {
	return &LoggingDocumentRenderer{next: next, logger: logger}
}

func (r *LoggingDocumentRenderer) RenderDocument(ctx context.Context, req *webscraper.RenderRequest) (doc *webscraper.RenderedDocument, err error) {
	defer func(begin time.Time) {
		attrs := []any{"format", req.Format, "duration", time.Since(begin), "err", err}
		if doc != nil {
			attrs = append(attrs, "filename", doc.Filename, "bytes", len(doc.Content))
		}
		r.logger.Info("render document", attrs...)
	}(time.Now())
	return r.next.RenderDocument(ctx, req)
}

// Ensure LoggingDocumentStore implements webscraper.DocumentStore.
var _ webscraper.DocumentStore = (*LoggingDocumentStore)(nil)

// LoggingDocumentStore wraps a DocumentStore with logging.
type LoggingDocumentStore struct {
	next   webscraper.DocumentStore
	logger *slog.Logger
}

// NewLoggingDocumentStore creates a new LoggingDocumentStore.
func NewLoggingDocumentStore(next webscraper.DocumentStore, logger *slog.Logger) *LoggingDocumentStore {
	return &LoggingDocumentStore{next: next, logger: logger}
}

func (s *LoggingDocumentStore) SaveDocument(ctx context.Context, doc *webscraper.RenderedDocument) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save document",
			"filename", doc.Filename,
			"bytes", len(doc.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveDocument(ctx, doc)
}

func (s *LoggingDocumentStore) FindDocument(ctx context.Context, filename string) (doc *webscraper.StoredDocument, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find document",
			"filename", filename,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocument(ctx, filename)
}

func (s *LoggingDocumentStore) Sweep(ctx context.Context, maxAge time.Duration) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sweep documents",
			"max_age", maxAge,
			"removed", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Sweep(ctx, maxAge)
}
