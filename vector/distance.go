package vector

import (
	"fmt"

	"github.com/viant/vec/search"
)

// CosineSimilarity computes the cosine similarity of two vectors: the dot
// product divided by the product of magnitudes, in [-1, 1]. When either
// vector has zero magnitude the similarity is undefined; this implementation
// reports 0 rather than failing, so a zero query vector simply ranks nothing
// above anything else. Vectors of different lengths are an error.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine similarity dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	va := search.Float32s(a)
	if va.Magnitude() == 0 || search.Float32s(b).Magnitude() == 0 {
		return 0, nil
	}
	// viant/vec returns cosine distance (1 - similarity).
	return 1 - float64(va.CosineDistance(b)), nil
}

// L2Distance computes the Euclidean distance between two vectors.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return float64(search.Float32s(a).EuclideanDistance(b)), nil
}
