package openai

import (
	"context"
	"strings"

	"github.com/dartisan/webscraper"
	openai "github.com/sashabaranov/go-openai"
)

// Sampling parameters for extraction requests.
const (
	Temperature = 0.1
	MaxTokens   = 2000
)

// Ensure Extractor implements webscraper.DataExtractor at compile time.
var _ webscraper.DataExtractor = (*Extractor)(nil)

// Extractor implements webscraper.DataExtractor with a chat completion model.
type Extractor struct {
	client Client
	model  string
}

// NewExtractor creates an Extractor using model, or DefaultModel when empty.
func NewExtractor(client Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// ExtractData sends content and prompt to the model and parses its reply.
func (e *Extractor) ExtractData(ctx context.Context, content, prompt string) (webscraper.Value, error) {
	if strings.TrimSpace(prompt) == "" {
		return webscraper.Value{}, webscraper.Errorf(webscraper.EINVALID, "prompt required")
	}

	resp, err := e.client.CreateChatCompletion(ctx, BuildRequest(e.model, content, prompt))
	if err != nil {
		return webscraper.Value{}, err
	}
	if len(resp.Choices) == 0 {
		return webscraper.Value{}, webscraper.Errorf(webscraper.EINTERNAL, "model returned no choices")
	}

	return webscraper.ParseReply(resp.Choices[0].Message.Content), nil
}

// Ping runs a minimal extraction and checks the reply is a mapping.
func (e *Extractor) Ping(ctx context.Context) error {
	v, err := e.ExtractData(ctx, webscraper.PingContent, webscraper.PingPrompt)
	if err != nil {
		return err
	}
	return webscraper.CheckPingReply(v)
}

// BuildRequest returns the chat completion request for an extraction.
func BuildRequest(model, content, prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: webscraper.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: webscraper.BuildUserPrompt(content, prompt)},
		},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}
}
