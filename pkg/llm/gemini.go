// Package llm wraps the Gemini API behind the plain text-generation surface
// the conversion pipeline needs.
package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// defaultCallTimeout bounds a single generation call so a conversion is never
// left pending on the service.
const defaultCallTimeout = 60 * time.Second

// Client handles communication with the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a Gemini client. The API key is required; the model
// defaults to DefaultModel when empty.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client:  client,
		model:   model,
		timeout: defaultCallTimeout,
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// GenerateText sends a prompt and returns the response text. The call is
// bounded by the client timeout on top of any deadline already on ctx.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.2),
	})
	if err != nil {
		return "", fmt.Errorf("gemini (model: %s) request failed: %w", c.model, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini (model: %s) returned an empty response", c.model)
	}
	return text, nil
}
