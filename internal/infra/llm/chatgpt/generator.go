package chatgpt

import (
	"context"
	"errors"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/pkg/metrics"
)

// Generator adapts the chat completions client to the outfit domain.
type Generator struct {
	client      *Client
	model       string
	temperature float32
}

// NewGenerator constructs the adapter.
func NewGenerator(client *Client, model string, temperature float32) *Generator {
	return &Generator{client: client, model: model, temperature: temperature}
}

// Generate sends the prompt as a single user message.
func (g *Generator) Generate(ctx context.Context, prompt string) (outfit.Generation, error) {
	resp, err := g.client.CreateChatCompletion(ctx, ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages:    []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return outfit.Generation{}, err
	}
	if len(resp.Choices) == 0 {
		return outfit.Generation{}, errors.New("chatgpt returned no choices")
	}

	model := resp.Model
	if model == "" {
		model = g.model
	}
	return outfit.Generation{
		Text:  resp.Choices[0].Message.Content,
		Model: model,
		Usage: metrics.NewTokenUsage(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens),
	}, nil
}

var _ outfit.Generator = (*Generator)(nil)
