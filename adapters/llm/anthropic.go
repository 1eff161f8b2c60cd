package llm

import (
	"context"
	"fmt"
	"time"

	apperrors "careerate/internal/errors"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicConfig holds the Claude generator settings
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// AnthropicAdapter implements ports.TextGenerator using the Claude API.
// It backs the learning path generation where longer structured text is needed.
type AnthropicAdapter struct {
	config AnthropicConfig
	client anthropic.Client
}

// NewAnthropicAdapter creates a new Claude text generator
func NewAnthropicAdapter(config AnthropicConfig) (*AnthropicAdapter, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("missing Anthropic API key")
	}
	if config.Model == "" {
		config.Model = "claude-3-5-sonnet-latest"
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 2048
	}

	return &AnthropicAdapter{
		config: config,
		client: anthropic.NewClient(option.WithAPIKey(config.APIKey)),
	}, nil
}

// GenerateText sends the prompt to Claude and returns the concatenated text blocks
func (a *AnthropicAdapter) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}
	if maxTokens <= 0 {
		maxTokens = a.config.MaxTokens
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.config.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					{OfText: &anthropic.TextBlockParam{Text: prompt}},
				},
			},
		},
	})
	if err != nil {
		return "", apperrors.CollaboratorUnavailable("anthropic", err)
	}

	var rawText string
	for _, block := range msg.Content {
		if block.Type == "text" {
			rawText += block.Text
		}
	}
	if rawText == "" {
		return "", fmt.Errorf("anthropic response missing text content")
	}
	return rawText, nil
}
