package llm

import (
	"context"

	"careerate/ports"
)

// JSONGenerator adapts any TextGenerator into a StructuredGenerator by
// stripping markdown fences from the completion. Used to put the Claude
// adapter behind the structured port without duplicating its transport.
type JSONGenerator struct {
	gen ports.TextGenerator
}

// NewJSONGenerator wraps a text generator
func NewJSONGenerator(gen ports.TextGenerator) *JSONGenerator {
	return &JSONGenerator{gen: gen}
}

// GenerateJSON returns the JSON payload from the wrapped generator's output
func (j *JSONGenerator) GenerateJSON(ctx context.Context, prompt string, maxTokens int) ([]byte, error) {
	response, err := j.gen.GenerateText(ctx, prompt, maxTokens)
	if err != nil {
		return nil, err
	}
	return []byte(ExtractJSON(response)), nil
}
