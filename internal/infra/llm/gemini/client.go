package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/pkg/metrics"
)

const defaultModel = "gemini-2.5-flash"

// Config holds the settings needed to reach the Gemini API.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
}

// Client generates text with Google Gemini through the genai SDK.
type Client struct {
	models      *genai.Models
	model       string
	temperature float32
}

// NewClient constructs a Gemini client. It fails when no API key is configured.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		models:      client.Models,
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate sends a single text prompt and returns the model's text answer.
func (c *Client) Generate(ctx context.Context, prompt string) (outfit.Generation, error) {
	var config *genai.GenerateContentConfig
	if c.temperature > 0 {
		config = &genai.GenerateContentConfig{Temperature: genai.Ptr(c.temperature)}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return outfit.Generation{}, fmt.Errorf("gemini generate content: %w", err)
	}

	gen := outfit.Generation{
		Text:  resp.Text(),
		Model: c.model,
	}
	if resp.ModelVersion != "" {
		gen.Model = resp.ModelVersion
	}
	if usage := resp.UsageMetadata; usage != nil {
		gen.Usage = metrics.NewTokenUsage(int(usage.PromptTokenCount), int(usage.CandidatesTokenCount), int(usage.TotalTokenCount))
	}
	return gen, nil
}

var _ outfit.Generator = (*Client)(nil)
