package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dartisan/webscraper"
)

// Extraction providers.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Fetcher backends.
const (
	FetcherHTTP    = "http"
	FetcherBrowser = "browser"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Globals   *Globals
	Store     webscraper.DocumentStore
	Renderer  webscraper.DocumentRenderer
	Extractor webscraper.DataExtractor
	Scraper   webscraper.ScrapeService
}

// Globals are settings shared by every command. Each can be set by flag
// or environment variable; flags win.
type Globals struct {
	Addr          string `name:"addr" env:"WEBSCRAPER_ADDR" default:"localhost:8000" help:"HTTP listen address"`
	OutputDir     string `name:"output-dir" env:"OUTPUT_DIR" default:"outputs" help:"Directory for generated documents"`
	RetentionDays int    `name:"retention-days" env:"RETENTION_DAYS" default:"7" help:"Days to keep generated documents (0 keeps them forever)"`
	SweepSchedule string `name:"sweep-schedule" env:"SWEEP_SCHEDULE" default:"@hourly" help:"Cron schedule for removing expired documents"`

	Provider          string `name:"llm-provider" env:"LLM_PROVIDER" enum:"openai,openrouter,gemini" default:"openai" help:"Extraction model provider (${enum})"`
	OpenAIAPIKey      string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	OpenAIModel       string `name:"openai-model" env:"OPENAI_MODEL" default:"gpt-3.5-turbo" help:"OpenAI model"`
	OpenRouterAPIKey  string `name:"openrouter-api-key" env:"OPENROUTER_API_KEY" help:"OpenRouter API key"`
	OpenRouterModel   string `name:"openrouter-model" env:"OPENROUTER_MODEL" default:"openai/gpt-3.5-turbo" help:"OpenRouter model"`
	OpenRouterReferer string `name:"openrouter-referer" env:"OPENROUTER_REFERER" default:"http://localhost:8000" help:"HTTP-Referer sent to OpenRouter"`
	GeminiAPIKey      string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	GeminiModel       string `name:"gemini-model" env:"GEMINI_MODEL" default:"gemini-2.5-flash" help:"Gemini model"`

	MaxContentLength int           `name:"max-content-length" env:"MAX_CONTENT_LENGTH" default:"100000" help:"Maximum characters of page text sent to the model"`
	RequestTimeout   time.Duration `name:"request-timeout" env:"REQUEST_TIMEOUT" default:"30s" help:"Timeout for page fetches and model calls"`
	Fetcher          string        `name:"fetcher" env:"FETCHER" enum:"http,browser" default:"http" help:"Page fetcher (${enum})"`
	ContentExtractor string        `name:"content-extractor" env:"CONTENT_EXTRACTOR" enum:"none,trafilatura,readability,auto" default:"none" help:"Main-content extractor (${enum})"`
	ContentFormat    string        `name:"content-format" env:"CONTENT_FORMAT" enum:"text,markdown" default:"text" help:"Form of page text sent to the model (${enum})"`

	AllowedOrigins []string `name:"allowed-origins" env:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173" help:"Origins allowed by CORS"`
	Debug          bool     `name:"debug" env:"DEBUG" help:"Enable debug logging"`
}

// Retention returns the document retention window.
func (g *Globals) Retention() time.Duration {
	return days(g.RetentionDays)
}

// DocumentPath returns where a stored document lives on disk.
func (g *Globals) DocumentPath(filename string) string {
	return filepath.Join(g.OutputDir, filename)
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals `embed:""`

	Serve   ServeCmd   `cmd:"" help:"Serve the scraping API"`
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape a page and save the extracted data as a document"`
	Render  RenderCmd  `cmd:"" help:"Render a JSON file as a document"`
	Cleanup CleanupCmd `cmd:"" help:"Remove expired documents"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL    string `arg:"" help:"Page to scrape"`
	Prompt string `arg:"" help:"What to extract from the page"`
	Format string `short:"f" enum:"text,word,pdf,excel" default:"text" help:"Output format (${enum})"`
	JSON   bool   `help:"Also print the extracted data as JSON"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	File   string `arg:"" type:"existingfile" help:"JSON file holding the data"`
	Format string `short:"f" enum:"text,word,pdf,excel" default:"text" help:"Output format (${enum})"`
	Prompt string `short:"p" help:"Prompt recorded in the document"`
}

// CleanupCmd is the "cleanup" subcommand.
type CleanupCmd struct {
	Days int `help:"Remove documents older than this many days (defaults to --retention-days)"`
}

// errorText returns the message of a webscraper error, or the full error
// text for anything else.
func errorText(err error) string {
	var e *webscraper.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
