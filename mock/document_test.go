package mock_test

import (
	"context"
	"testing"
	"time"

	"github.com/dartisan/webscraper"
	"github.com/dartisan/webscraper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ webscraper.DocumentStore = &mock.DocumentStore{}
}

func TestDocumentStore_SaveDocument(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveDocumentFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *webscraper.RenderedDocument
		s := &mock.DocumentStore{
			SaveDocumentFn: func(_ context.Context, doc *webscraper.RenderedDocument) error {
				calledWith = doc
				return nil
			},
		}

		doc := &webscraper.RenderedDocument{Filename: "a.txt"}
		err := s.SaveDocument(context.Background(), doc)

		require.NoError(t, err)
		assert.Same(t, doc, calledWith)
	})

	t.Run("returns error from SaveDocumentFn", func(t *testing.T) {
		t.Parallel()

		s := &mock.DocumentStore{
			SaveDocumentFn: func(context.Context, *webscraper.RenderedDocument) error {
				return webscraper.Errorf(webscraper.EINTERNAL, "disk full")
			},
		}

		err := s.SaveDocument(context.Background(), &webscraper.RenderedDocument{})

		assert.Equal(t, webscraper.EINTERNAL, webscraper.ErrorCode(err))
	})
}

func TestDocumentStore_Sweep(t *testing.T) {
	t.Parallel()

	var gotAge time.Duration
	s := &mock.DocumentStore{
		SweepFn: func(_ context.Context, maxAge time.Duration) (int, error) {
			gotAge = maxAge
			return 3, nil
		},
	}

	n, err := s.Sweep(context.Background(), time.Hour)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, time.Hour, gotAge)
}
