package ports

import "context"

// Embedder converts text into a dense vector for semantic similarity.
// Implementations call an external embedding service; failures are expected
// and callers degrade the semantic term rather than aborting a batch.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
