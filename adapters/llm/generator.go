package llm

import (
	"context"
	"fmt"
	"strings"

	apperrors "careerate/internal/errors"
)

// GeneratorAdapter implements ports.TextGenerator and ports.StructuredGenerator
// on top of the OpenAI chat completions API.
type GeneratorAdapter struct {
	config Config
	client LLMClient
}

// NewGeneratorAdapter creates a new OpenAI text generator
func NewGeneratorAdapter(config Config) (*GeneratorAdapter, error) {
	client, err := newLLMClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &GeneratorAdapter{
		config: config,
		client: client,
	}, nil
}

// NewGeneratorAdapterWithClient creates an adapter with an injected client (testing)
func NewGeneratorAdapterWithClient(config Config, client LLMClient) *GeneratorAdapter {
	return &GeneratorAdapter{config: config, client: client}
}

// GenerateText sends the prompt and returns the raw completion
func (g *GeneratorAdapter) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	if maxTokens <= 0 {
		maxTokens = g.config.MaxTokens
	}

	response, err := g.client.ChatCompletion(ctx, g.config.Model, prompt, maxTokens)
	if err != nil {
		return "", apperrors.CollaboratorUnavailable("openai", err)
	}
	return strings.TrimSpace(response), nil
}

// GenerateJSON sends the prompt and returns the JSON payload from the
// completion, stripping markdown code fences when the model adds them.
func (g *GeneratorAdapter) GenerateJSON(ctx context.Context, prompt string, maxTokens int) ([]byte, error) {
	response, err := g.GenerateText(ctx, prompt, maxTokens)
	if err != nil {
		return nil, err
	}
	return []byte(ExtractJSON(response)), nil
}

// ExtractJSON pulls a JSON document out of an LLM response, handling markdown
// code blocks around the payload.
func ExtractJSON(response string) string {
	jsonStr := response
	if strings.Contains(jsonStr, "```json") {
		start := strings.Index(jsonStr, "```json")
		end := strings.Index(jsonStr[start+7:], "```")
		if end > 0 {
			jsonStr = jsonStr[start+7 : start+7+end]
		}
	} else if strings.Contains(jsonStr, "```") {
		start := strings.Index(jsonStr, "```")
		end := strings.Index(jsonStr[start+3:], "```")
		if end > 0 {
			jsonStr = jsonStr[start+3 : start+3+end]
		}
	}
	return strings.TrimSpace(jsonStr)
}
