package webscraper

import (
	"context"
	"strings"
)

// DataExtractor asks a language model to extract structured data from page text.
type DataExtractor interface {
	// ExtractData extracts data described by prompt from content.
	// A reply that is not valid JSON is returned as
	// {"extracted_text": <reply>}.
	ExtractData(ctx context.Context, content, prompt string) (Value, error)

	// Ping performs a minimal extraction to check the provider is usable.
	Ping(ctx context.Context) error
}

// SystemPrompt instructs the model how to reply.
const SystemPrompt = "You are an expert web scraper. Extract data from the provided web content according to the user's instructions. Return the result as a JSON object with clear structure. If you cannot extract the requested data, return an empty result with an explanation."

// Ping inputs used by DataExtractor implementations.
const (
	PingContent = "Test content"
	PingPrompt  = "Return 'test successful' if you can process this."
)

// CheckPingReply returns an error unless v, the reply to a ping
// extraction, is a mapping.
func CheckPingReply(v Value) error {
	if !v.IsMap() {
		return Errorf(EINTERNAL, "unexpected ping reply of kind %s", v.Kind())
	}
	return nil
}

// ExtractedTextKey holds a model reply that could not be parsed as JSON.
const ExtractedTextKey = "extracted_text"

// BuildUserPrompt builds the user message sent alongside SystemPrompt.
func BuildUserPrompt(content, prompt string) string {
	var sb strings.Builder
	sb.WriteString("User Instructions: ")
	sb.WriteString(prompt)
	sb.WriteString("\n\nWeb Content:\n")
	sb.WriteString(content)
	sb.WriteString("\n\nPlease extract the requested data and return it as a structured JSON object.")
	return sb.String()
}

// ParseReply converts a model reply into a Value. Markdown code fences
// around the JSON are ignored. Replies that do not parse are wrapped as
// {"extracted_text": reply}.
func ParseReply(reply string) Value {
	if v, err := ParseValue([]byte(stripCodeFence(reply))); err == nil {
		return v
	}
	return MapValue(F(ExtractedTextKey, StringValue(reply)))
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an info string such as "json".
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
