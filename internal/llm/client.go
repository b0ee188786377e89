package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is required")

// Client generates text from a prompt.
type Client interface {
	// Generate returns the model's text response to prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// Model names the model behind the client.
	Model() string
	// Close releases the underlying connection.
	Close() error
}

// GeminiClient implements Client for one Gemini model.
type GeminiClient struct {
	client *genai.Client
	model  string
	cfg    *Config
}

// NewGeminiClient connects to Gemini using the model configured for tier.
func NewGeminiClient(ctx context.Context, cfg *Config, apiKey string, tier ModelTier) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	model := cfg.GetModel(tier)
	if model == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model, cfg: cfg}, nil
}

// Generate sends prompt as a single text part.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.cfg.Temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// Model returns the model name.
func (c *GeminiClient) Model() string {
	return c.model
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text parts in response")
	}
	return sb.String(), nil
}
