package recommend

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"scaled copies", []float64{1, 1}, []float64{3, 3}, 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CosineSimilarity(tc.a, tc.b)
			if err != nil {
				t.Fatalf("CosineSimilarity failed: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCosineSimilarityErrors(t *testing.T) {
	if _, err := CosineSimilarity([]float64{}, []float64{1}); err == nil {
		t.Error("expected error for empty vector")
	}
	if _, err := CosineSimilarity([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for dimension mismatch")
	}
}

func TestCosineSimilarityZeroNorm(t *testing.T) {
	got, err := CosineSimilarity([]float64{0, 0, 0}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("zero vector should not error: %v", err)
	}
	if got != 0 {
		t.Errorf("zero vector should yield 0, got %v", got)
	}
}
