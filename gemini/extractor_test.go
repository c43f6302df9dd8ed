package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dartisan/webscraper"
	"github.com/dartisan/webscraper/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// Ensure Extractor implements webscraper.DataExtractor at compile time.
var _ webscraper.DataExtractor = (*gemini.Extractor)(nil)

// newTestClient returns a genai client that talks to a server replying
// with text, and a channel receiving each request body.
func newTestClient(t *testing.T, text string) (*genai.Client, <-chan map[string]any) {
	t.Helper()

	bodies := make(chan map[string]any, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		bodies <- body

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	require.NoError(t, err)
	return client, bodies
}

func TestExtractor_ExtractData(t *testing.T) {
	t.Parallel()

	t.Run("parses JSON reply", func(t *testing.T) {
		t.Parallel()

		client, bodies := newTestClient(t, `{"title":"Test Page","links":["a","b"]}`)

		v, err := gemini.NewExtractor(client, "").ExtractData(context.Background(), "page text", "Get the title")

		require.NoError(t, err)
		assert.Equal(t, []string{"title", "links"}, v.Keys())

		body := <-bodies
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "User Instructions: Get the title")
		assert.Contains(t, string(raw), "application/json")
	})

	t.Run("wraps non-JSON reply", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, "No products were found.")

		v, err := gemini.NewExtractor(client, "").ExtractData(context.Background(), "page text", "List products")

		require.NoError(t, err)
		text, ok := v.Get(webscraper.ExtractedTextKey)
		require.True(t, ok)
		assert.Equal(t, "No products were found.", text.String())
	})

	t.Run("rejects empty prompt before calling the model", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewExtractor(nil, "").ExtractData(context.Background(), "page text", "")

		require.Error(t, err)
		assert.Equal(t, webscraper.EINVALID, webscraper.ErrorCode(err))
		assert.Contains(t, webscraper.ErrorMessage(err), "prompt required")
	})
}

func TestExtractor_Ping(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, `{"result":"test successful"}`)

	assert.NoError(t, gemini.NewExtractor(client, "").Ping(context.Background()))
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewClient(context.Background(), "")

	assert.Equal(t, webscraper.EINVALID, webscraper.ErrorCode(err))
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Equal(t, webscraper.SystemPrompt, config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, *config.Temperature, 0.001)
	assert.Equal(t, int32(2000), config.MaxOutputTokens)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
}
