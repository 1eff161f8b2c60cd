package ports

import "context"

// TextGenerator produces free-form text from a prompt. It wraps an external
// LLM; callers must tolerate errors and substitute their own fallbacks.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// StructuredGenerator produces a JSON document from a prompt. Used for the
// pattern-insight, learning-path and guide flows where the response must
// parse into a typed struct.
type StructuredGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, maxTokens int) ([]byte, error)
}
