package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/dartisan/webscraper"
	"github.com/dartisan/webscraper/etree"
	"github.com/dartisan/webscraper/excelize"
	"github.com/dartisan/webscraper/fs"
	"github.com/dartisan/webscraper/gemini"
	"github.com/dartisan/webscraper/gofpdf"
	"github.com/dartisan/webscraper/goquery"
	"github.com/dartisan/webscraper/htmltomarkdown"
	wshttp "github.com/dartisan/webscraper/http"
	"github.com/dartisan/webscraper/openai"
	"github.com/dartisan/webscraper/readability"
	"github.com/dartisan/webscraper/render"
	"github.com/dartisan/webscraper/rod"
	"github.com/dartisan/webscraper/scrape"
	wsslog "github.com/dartisan/webscraper/slog"
	"github.com/dartisan/webscraper/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	m.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Store holds generated documents. Opened by Run.
	Store *fs.Store

	// Services for end-to-end testing. When set, Run uses them instead of
	// building them from configuration.
	Fetcher       webscraper.Fetcher
	DataExtractor webscraper.DataExtractor

	closers []io.Closer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources opened by Run.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webscraper"),
		kong.Description("Scrape web pages into structured documents with a language model"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webscraper --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	g := &cli.Globals
	logger := newLogger(stderr, g.Debug)
	deps.Globals = g
	deps.Logger = logger

	m.Store = fs.NewStore(g.OutputDir)
	if err := m.Store.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set OUTPUT_DIR to use a different output directory")
		return fmt.Errorf("failed to open output directory %q: %w", g.OutputDir, err)
	}
	deps.Store = wsslog.NewLoggingDocumentStore(m.Store, logger)

	cmd := strings.Fields(kongCtx.Command())[0]

	if cmd == "serve" || cmd == "scrape" || cmd == "render" {
		deps.Renderer = wsslog.NewLoggingDocumentRenderer(newDispatcher(), logger)
	}

	if cmd == "serve" || cmd == "scrape" {
		extractor := m.DataExtractor
		if extractor == nil {
			if extractor, err = newDataExtractor(ctx, g); err != nil {
				fmt.Fprintf(stderr, "Hint: Set the API key for the %q provider (%s)\n", g.Provider, apiKeyEnv(g.Provider))
				return fmt.Errorf("failed to configure %s: %w", g.Provider, err)
			}
		}
		deps.Extractor = wsslog.NewLoggingDataExtractor(extractor, logger)

		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(g); err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or set FETCHER=http")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			m.closers = append(m.closers, fetcher)
		}

		content := &scrape.ContentFetcher{
			Fetcher:    wsslog.NewLoggingFetcher(fetcher, logger),
			Extractors: newContentExtractors(g.ContentExtractor),
			Converter:  newConverter(g.ContentFormat),
			MaxLength:  g.MaxContentLength,
		}
		deps.Scraper = wsslog.NewLoggingScrapeService(&scrape.Scraper{
			Content:   wsslog.NewLoggingContentFetcher(content, logger),
			Extractor: deps.Extractor,
			Renderer:  deps.Renderer,
			Store:     deps.Store,
		}, logger)
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newDispatcher() *render.Dispatcher {
	return render.NewDispatcher(map[webscraper.Format]webscraper.Renderer{
		webscraper.FormatText:  webscraper.TextRenderer{},
		webscraper.FormatWord:  etree.NewRenderer(),
		webscraper.FormatPDF:   gofpdf.NewRenderer(),
		webscraper.FormatExcel: excelize.NewRenderer(),
	})
}

func newDataExtractor(ctx context.Context, g *Globals) (webscraper.DataExtractor, error) {
	switch g.Provider {
	case ProviderGemini:
		client, err := gemini.NewClient(ctx, g.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return gemini.NewExtractor(client, g.GeminiModel), nil
	case ProviderOpenRouter:
		cfg := openai.OpenRouterConfig(g.OpenRouterAPIKey, g.OpenRouterReferer)
		cfg.Timeout = g.RequestTimeout
		client, err := openai.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return openai.NewExtractor(client, g.OpenRouterModel), nil
	default:
		client, err := openai.NewClient(openai.ClientConfig{APIKey: g.OpenAIAPIKey, Timeout: g.RequestTimeout})
		if err != nil {
			return nil, err
		}
		return openai.NewExtractor(client, g.OpenAIModel), nil
	}
}

func apiKeyEnv(provider string) string {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func newFetcher(g *Globals) (webscraper.Fetcher, error) {
	if g.Fetcher == FetcherBrowser {
		return rod.NewFetcher(rod.WithFetchTimeout(g.RequestTimeout))
	}
	return wshttp.NewFetcher(wshttp.WithTimeout(g.RequestTimeout)), nil
}

func newContentExtractors(name string) []webscraper.Extractor {
	switch name {
	case "trafilatura":
		return []webscraper.Extractor{trafilatura.NewExtractor()}
	case "readability":
		return []webscraper.Extractor{readability.NewExtractor(nil)}
	case "auto":
		return []webscraper.Extractor{trafilatura.NewExtractor(), readability.NewExtractor(nil)}
	}
	return nil
}

func newConverter(format string) webscraper.Converter {
	if format == "markdown" {
		return htmltomarkdown.NewConverter()
	}
	return goquery.NewTextConverter()
}
