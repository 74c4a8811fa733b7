package matching

import "math"

// Cosine returns the cosine similarity of two equal-dimension vectors,
// in [-1,1] for vectors produced by Embed. If either vector has zero norm the
// result is 0 rather than NaN. Rescaling to [0,1] is the engine's concern,
// not this function's.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
