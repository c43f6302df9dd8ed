// Package gemini extracts data with Google Gemini models.
package gemini

import (
	"context"
	"strings"

	"github.com/dartisan/webscraper"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Extractor implements webscraper.DataExtractor at compile time.
var _ webscraper.DataExtractor = (*Extractor)(nil)

// Extractor implements webscraper.DataExtractor using Google Gemini.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a new Extractor using model, or DefaultModel when empty.
func NewExtractor(client *genai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// NewClient creates a Gemini API client for apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, webscraper.Errorf(webscraper.EINVALID, "API key not configured")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// ExtractData asks the model to extract data described by prompt from content.
func (e *Extractor) ExtractData(ctx context.Context, content, prompt string) (webscraper.Value, error) {
	if strings.TrimSpace(prompt) == "" {
		return webscraper.Value{}, webscraper.Errorf(webscraper.EINVALID, "prompt required")
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: webscraper.BuildUserPrompt(content, prompt)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return webscraper.Value{}, err
	}
	if result == nil {
		return webscraper.Value{}, webscraper.Errorf(webscraper.EINTERNAL, "gemini returned nil result")
	}

	return webscraper.ParseReply(result.Text()), nil
}

// Ping runs a minimal extraction and checks the reply is a mapping.
func (e *Extractor) Ping(ctx context.Context) error {
	v, err := e.ExtractData(ctx, webscraper.PingContent, webscraper.PingPrompt)
	if err != nil {
		return err
	}
	return webscraper.CheckPingReply(v)
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
// Replies are requested as JSON.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: webscraper.SystemPrompt}},
		},
		Temperature:      &temp,
		MaxOutputTokens:  2000,
		ResponseMIMEType: "application/json",
	}
}
