// Package openai extracts data with OpenAI-compatible chat completion APIs,
// including OpenRouter, using github.com/sashabaranov/go-openai.
package openai

import (
	"context"
	"net/http"
	"time"

	"github.com/dartisan/webscraper"
	openai "github.com/sashabaranov/go-openai"
)

// Provider endpoints and defaults.
const (
	OpenRouterBaseURL      = "https://openrouter.ai/api/v1"
	DefaultModel           = "gpt-3.5-turbo"
	DefaultOpenRouterModel = "openai/gpt-3.5-turbo"
	DefaultTimeout         = 30 * time.Second
)

// AppTitle identifies the application to OpenRouter.
const AppTitle = "AI Web Scraper"

// Client is the subset of *openai.Client used by Extractor.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ClientConfig configures an OpenAI-compatible client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// Headers are added to every request.
	Headers map[string]string
}

// OpenRouterConfig returns a ClientConfig for OpenRouter. referer is sent as
// HTTP-Referer for attribution.
func OpenRouterConfig(apiKey, referer string) ClientConfig {
	return ClientConfig{
		APIKey:  apiKey,
		BaseURL: OpenRouterBaseURL,
		Headers: map[string]string{
			"HTTP-Referer": referer,
			"X-Title":      AppTitle,
		},
	}
}

// NewClient returns an *openai.Client for cfg. Returns EINVALID when no
// API key is configured.
func NewClient(cfg ClientConfig) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, webscraper.Errorf(webscraper.EINVALID, "API key not configured")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var transport http.RoundTripper = http.DefaultTransport
	if len(cfg.Headers) > 0 {
		transport = &headerTransport{base: transport, headers: cfg.Headers}
	}
	config.HTTPClient = &http.Client{Timeout: timeout, Transport: transport}

	return openai.NewClientWithConfig(config), nil
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}
