package recommend

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// CosineSimilarity computes the cosine of the angle between two embedding
// vectors, in [-1,1]. A zero-magnitude vector yields 0 (no signal), not an
// error, since degenerate embeddings degrade to the neutral semantic term.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("empty embedding vector")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}

	normA := math.Sqrt(floats.Dot(a, a))
	normB := math.Sqrt(floats.Dot(b, b))
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return floats.Dot(a, b) / (normA * normB), nil
}
