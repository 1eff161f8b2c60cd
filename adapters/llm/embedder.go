package llm

import (
	"context"
	"fmt"

	apperrors "careerate/internal/errors"
)

// EmbedderAdapter implements ports.Embedder using the OpenAI embeddings API
type EmbedderAdapter struct {
	config Config
	client LLMClient
}

// NewEmbedderAdapter creates a new embedding adapter
func NewEmbedderAdapter(config Config) (*EmbedderAdapter, error) {
	client, err := newLLMClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &EmbedderAdapter{
		config: config,
		client: client,
	}, nil
}

// NewEmbedderAdapterWithClient creates an adapter with an injected client (testing)
func NewEmbedderAdapterWithClient(config Config, client LLMClient) *EmbedderAdapter {
	return &EmbedderAdapter{config: config, client: client}
}

// Embed returns the embedding vector for the given text
func (e *EmbedderAdapter) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	model := e.config.EmbeddingModel
	if model == "" {
		model = "text-embedding-3-small"
	}

	vector, err := e.client.Embedding(ctx, model, text)
	if err != nil {
		return nil, apperrors.CollaboratorUnavailable("embedding", err)
	}
	return vector, nil
}
