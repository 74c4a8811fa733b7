package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine_ZeroVectorGuard(t *testing.T) {
	zero := make([]float64, EmbeddingDim)
	other := Embed("anything")

	assert.Equal(t, 0.0, Cosine(zero, other))
	assert.Equal(t, 0.0, Cosine(other, zero))
	assert.Equal(t, 0.0, Cosine(zero, zero))
}

func TestCosine_IdenticalVectors(t *testing.T) {
	vec := Embed("identical input")
	assert.InDelta(t, 1.0, Cosine(vec, vec), 1e-9)
}

func TestCosine_OppositeVectors(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-1, -2, -3}
	assert.InDelta(t, -1.0, Cosine(a, b), 1e-9)
}

func TestCosine_Orthogonal(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}
	assert.InDelta(t, 0.0, Cosine(a, b), 1e-9)
}

func TestCosine_EmbeddingsStayInRange(t *testing.T) {
	texts := []string{"python", "sql", "marketing", "design", "finance law"}
	for _, x := range texts {
		for _, y := range texts {
			sim := Cosine(Embed(x), Embed(y))
			assert.False(t, math.IsNaN(sim))
			assert.GreaterOrEqual(t, sim, -1.0)
			assert.LessOrEqual(t, sim, 1.0+1e-9)
		}
	}
}
