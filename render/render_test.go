package render_test

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dartisan/webscraper"
	"github.com/dartisan/webscraper/mock"
	"github.com/dartisan/webscraper/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

func textDispatcher(opts ...render.Option) *render.Dispatcher {
	return render.NewDispatcher(map[webscraper.Format]webscraper.Renderer{
		webscraper.FormatText: webscraper.TextRenderer{},
	}, opts...)
}

func TestDispatcher_RenderDocument(t *testing.T) {
	t.Parallel()

	t.Run("names the document from clock and id", func(t *testing.T) {
		t.Parallel()

		d := textDispatcher(
			render.WithClock(func() time.Time { return fixedTime }),
			render.WithIDFunc(func() string { return "a1b2c3d4" }),
		)

		doc, err := d.RenderDocument(context.Background(), &webscraper.RenderRequest{
			Data:   webscraper.MapValue(webscraper.F("title", webscraper.StringValue("Test Page"))),
			Format: webscraper.FormatText,
			Prompt: "Extract title",
		})

		require.NoError(t, err)
		assert.Equal(t, "scrape_result_20240115_143022_a1b2c3d4.txt", doc.Filename)
		assert.Equal(t, "text/plain", doc.MIMEType)
		assert.Contains(t, string(doc.Content), "Generated: 2024-01-15 14:30:22")
		assert.Contains(t, string(doc.Content), "TITLE: Test Page")
	})

	t.Run("keeps a caller supplied GeneratedAt", func(t *testing.T) {
		t.Parallel()

		d := textDispatcher(render.WithClock(func() time.Time { return fixedTime }))

		doc, err := d.RenderDocument(context.Background(), &webscraper.RenderRequest{
			Data:        webscraper.MapValue(),
			Format:      webscraper.FormatText,
			GeneratedAt: time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC),
		})

		require.NoError(t, err)
		assert.Contains(t, string(doc.Content), "Generated: 2020-02-03 04:05:06")
	})

	t.Run("generates unique lowercase hex filenames", func(t *testing.T) {
		t.Parallel()

		d := textDispatcher(render.WithClock(func() time.Time { return fixedTime }))
		seen := make(map[string]bool)

		for range 50 {
			doc, err := d.RenderDocument(context.Background(), &webscraper.RenderRequest{
				Data:   webscraper.MapValue(),
				Format: webscraper.FormatText,
			})
			require.NoError(t, err)
			assert.True(t, webscraper.IsGeneratedFilename(doc.Filename), doc.Filename)
			assert.False(t, seen[doc.Filename], "duplicate filename %s", doc.Filename)
			seen[doc.Filename] = true
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := textDispatcher().RenderDocument(context.Background(), &webscraper.RenderRequest{
			Data:   webscraper.MapValue(),
			Format: webscraper.Format("csv"),
		})

		assert.Equal(t, webscraper.EUNSUPPORTED, webscraper.ErrorCode(err))
	})

	t.Run("rejects valid format without a renderer", func(t *testing.T) {
		t.Parallel()

		_, err := textDispatcher().RenderDocument(context.Background(), &webscraper.RenderRequest{
			Data:   webscraper.MapValue(),
			Format: webscraper.FormatPDF,
		})

		assert.Equal(t, webscraper.EUNSUPPORTED, webscraper.ErrorCode(err))
	})

	t.Run("rejects data nested beyond the limit", func(t *testing.T) {
		t.Parallel()

		v := webscraper.StringValue("leaf")
		for range webscraper.MaxDepth + 1 {
			v = webscraper.ListValue(v)
		}

		_, err := textDispatcher().RenderDocument(context.Background(), &webscraper.RenderRequest{
			Data:   v,
			Format: webscraper.FormatText,
		})

		assert.Equal(t, webscraper.EINVALID, webscraper.ErrorCode(err))
	})

	t.Run("wraps renderer failures", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("boom")
		d := render.NewDispatcher(map[webscraper.Format]webscraper.Renderer{
			webscraper.FormatPDF: &mock.Renderer{
				RenderFn: func(io.Writer, *webscraper.RenderRequest) error { return cause },
			},
		})

		_, err := d.RenderDocument(context.Background(), &webscraper.RenderRequest{
			Data:   webscraper.MapValue(),
			Format: webscraper.FormatPDF,
		})

		var rerr *webscraper.RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, webscraper.FormatPDF, rerr.Format)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("recovers renderer panics", func(t *testing.T) {
		t.Parallel()

		d := render.NewDispatcher(map[webscraper.Format]webscraper.Renderer{
			webscraper.FormatWord: &mock.Renderer{
				RenderFn: func(io.Writer, *webscraper.RenderRequest) error { panic("bad shape") },
			},
		})

		_, err := d.RenderDocument(context.Background(), &webscraper.RenderRequest{
			Data:   webscraper.MapValue(),
			Format: webscraper.FormatWord,
		})

		var rerr *webscraper.RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Contains(t, err.Error(), "bad shape")
	})

	t.Run("returns context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := textDispatcher().RenderDocument(ctx, &webscraper.RenderRequest{Format: webscraper.FormatText})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewID(t *testing.T) {
	t.Parallel()

	id := render.NewID()

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}$`), id)
	assert.NotEqual(t, id, render.NewID())
	assert.False(t, strings.ContainsAny(id, "-ABCDEF"))
}
