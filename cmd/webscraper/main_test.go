package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dartisan/webscraper"
	main "github.com/dartisan/webscraper/cmd/webscraper"
	"github.com/dartisan/webscraper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<html><head><title>Test Page</title></head>
<body><h1>Test Page</h1><p>Widgets cost $5.</p></body></html>`

func newTestMain() *main.Main {
	m := main.NewMain()
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return testPage, nil
		},
		CloseFn: func() error { return nil },
	}
	m.DataExtractor = &mock.DataExtractor{
		ExtractDataFn: func(ctx context.Context, content, prompt string) (webscraper.Value, error) {
			return webscraper.MapValue(webscraper.F("title", webscraper.StringValue("Test Page"))), nil
		},
	}
	return m
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"serve", "scrape", "render", "cleanup"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("saves document and prints its path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := newTestMain()
		var gotContent, gotPrompt string
		m.DataExtractor = &mock.DataExtractor{
			ExtractDataFn: func(ctx context.Context, content, prompt string) (webscraper.Value, error) {
				gotContent, gotPrompt = content, prompt
				return webscraper.MapValue(webscraper.F("title", webscraper.StringValue("Test Page"))), nil
			},
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"--output-dir", dir, "scrape", "https://example.com/shop", "Get the title", "--json",
		}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, "Get the title", gotPrompt)
		assert.Contains(t, gotContent, "Widgets cost $5.")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		name := entries[0].Name()
		assert.True(t, webscraper.IsGeneratedFilename(name))
		assert.True(t, strings.HasSuffix(name, ".txt"))

		assert.Contains(t, stdout.String(), `"title": "Test Page"`)
		assert.Contains(t, stdout.String(), "Saved "+filepath.Join(dir, name))

		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(data), "TITLE: Test Page")
		assert.Contains(t, string(data), "Prompt: Get the title")
	})

	t.Run("rejects local URLs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := newTestMain()
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"--output-dir", dir, "scrape", "http://localhost:3000/", "Get the title",
		}, &bytes.Buffer{}, stderr)

		assert.Equal(t, webscraper.EINVALID, webscraper.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: Invalid URL. Please provide a valid HTTP/HTTPS URL.")
		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		err := newTestMain().Run(context.Background(), []string{
			"--output-dir", t.TempDir(), "scrape", "https://example.com", "Get the title", "--format", "csv",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}

func TestMain_Run_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders a JSON file in each format", func(t *testing.T) {
		t.Parallel()

		input := filepath.Join(t.TempDir(), "data.json")
		require.NoError(t, os.WriteFile(input, []byte(`{"items":[{"name":"A","price":"1"},{"name":"B","price":"2"}]}`), 0644))

		for _, format := range webscraper.Formats() {
			dir := t.TempDir()
			stdout := &bytes.Buffer{}

			err := main.NewMain().Run(context.Background(), []string{
				"--output-dir", dir, "render", input, "--format", string(format), "--prompt", "List items",
			}, stdout, &bytes.Buffer{})
			require.NoError(t, err, format)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1, format)
			assert.Equal(t, format.Extension(), filepath.Ext(entries[0].Name()))
			assert.Contains(t, stdout.String(), "Saved ")
		}
	})

	t.Run("reports invalid JSON", func(t *testing.T) {
		t.Parallel()

		input := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(input, []byte(`{"title":`), 0644))
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{
			"--output-dir", t.TempDir(), "render", input,
		}, &bytes.Buffer{}, stderr)

		assert.Equal(t, webscraper.EINVALID, webscraper.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: ")
	})
}

func TestMain_Run_Cleanup(t *testing.T) {
	t.Parallel()

	t.Run("removes only expired documents", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		old := filepath.Join(dir, "scrape_result_20200101_000000_aaaaaaaa.txt")
		fresh := filepath.Join(dir, "scrape_result_20200101_000000_bbbbbbbb.txt")
		require.NoError(t, os.WriteFile(old, []byte("old"), 0644))
		require.NoError(t, os.WriteFile(fresh, []byte("fresh"), 0644))
		past := time.Now().Add(-3 * 24 * time.Hour)
		require.NoError(t, os.Chtimes(old, past, past))
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{
			"--output-dir", dir, "cleanup", "--days", "2",
		}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.NoFileExists(t, old)
		assert.FileExists(t, fresh)
		assert.Contains(t, stdout.String(), "Removed 1 documents older than 2 days")
	})

	t.Run("falls back to retention days", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{
			"--output-dir", t.TempDir(), "--retention-days", "5", "cleanup",
		}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "older than 5 days")
	})

	t.Run("rejects disabled retention", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(), []string{
			"--output-dir", t.TempDir(), "--retention-days", "0", "cleanup",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, webscraper.EINVALID, webscraper.ErrorCode(err))
	})
}

func TestMain_Run_Serve_InvalidSchedule(t *testing.T) {
	t.Parallel()

	m := newTestMain()
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{
		"--output-dir", t.TempDir(), "--addr", "127.0.0.1:0", "--sweep-schedule", "every tuesday", "serve",
	}, &bytes.Buffer{}, stderr)
	defer m.Close()

	assert.Equal(t, webscraper.EINVALID, webscraper.ErrorCode(err))
	assert.Contains(t, stderr.String(), "invalid sweep schedule")
}

func TestMain_Run_Serve_StopsOnCancel(t *testing.T) {
	t.Parallel()

	m := newTestMain()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- m.Run(ctx, []string{"--output-dir", t.TempDir(), "--addr", "127.0.0.1:0", "serve"}, &bytes.Buffer{}, &bytes.Buffer{})
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestCLI_ScrapeJSONOutputIsValid(t *testing.T) {
	t.Parallel()

	m := newTestMain()
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{
		"--output-dir", t.TempDir(), "scrape", "https://example.com", "Get the title", "--json",
	}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	body, _, ok := strings.Cut(stdout.String(), "Saved ")
	require.True(t, ok)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, "Test Page", decoded["title"])
}
