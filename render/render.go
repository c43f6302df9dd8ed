// Package render dispatches render requests to per-format renderers and
// names the resulting documents.
package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dartisan/webscraper"
	"github.com/google/uuid"
)

// Ensure Dispatcher implements webscraper.DocumentRenderer at compile time.
var _ webscraper.DocumentRenderer = (*Dispatcher)(nil)

// Dispatcher selects the renderer for a request's format and returns the
// rendered document with a freshly generated filename.
type Dispatcher struct {
	renderers map[webscraper.Format]webscraper.Renderer
	now       func() time.Time
	newID     func() string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock sets the clock used for filenames and GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// WithIDFunc sets the generator of the 8-character filename id.
func WithIDFunc(fn func() string) Option {
	return func(d *Dispatcher) {
		d.newID = fn
	}
}

// NewDispatcher creates a Dispatcher serving the given renderers.
func NewDispatcher(renderers map[webscraper.Format]webscraper.Renderer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		renderers: renderers,
		now:       time.Now,
		newID:     NewID,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewID returns the first 8 hex characters of a random UUID.
func NewID() string {
	return uuid.NewString()[:8]
}

// RenderDocument renders req with the renderer registered for req.Format.
func (d *Dispatcher) RenderDocument(ctx context.Context, req *webscraper.RenderRequest) (*webscraper.RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, ok := d.renderers[req.Format]
	if !req.Format.Valid() || !ok {
		return nil, webscraper.Errorf(webscraper.EUNSUPPORTED, "Unsupported format: %s", req.Format)
	}
	if depth := req.Data.Depth(); depth > webscraper.MaxDepth {
		return nil, webscraper.Errorf(webscraper.EINVALID, "extracted data nesting %d exceeds %d levels", depth, webscraper.MaxDepth)
	}

	now := d.now()
	filename := webscraper.NewFilename(now, d.newID(), req.Format)

	rr := *req
	if rr.GeneratedAt.IsZero() {
		rr.GeneratedAt = now
	}

	var buf bytes.Buffer
	if err := safeRender(r, &buf, &rr); err != nil {
		return nil, &webscraper.RenderError{Format: req.Format, Err: err}
	}

	return &webscraper.RenderedDocument{
		Filename: filename,
		MIMEType: webscraper.MIMEType(filename),
		Content:  buf.Bytes(),
	}, nil
}

func safeRender(r webscraper.Renderer, buf *bytes.Buffer, req *webscraper.RenderRequest) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("renderer panic: %v", p)
		}
	}()
	return r.Render(buf, req)
}
