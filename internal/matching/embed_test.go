package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed_FixedDimension(t *testing.T) {
	assert.Len(t, Embed("backend engineer"), EmbeddingDim)
	assert.Len(t, Embed(""), EmbeddingDim)
}

func TestEmbed_Deterministic(t *testing.T) {
	a := Embed("python sql data engineering")
	b := Embed("python sql data engineering")
	assert.Equal(t, a, b, "identical text must produce a bit-identical vector")
}

func TestEmbed_EmptyUsesSentinel(t *testing.T) {
	assert.Equal(t, Embed(emptyTextSentinel), Embed(""))
}

func TestEmbed_ValuesInRange(t *testing.T) {
	for _, v := range Embed("range check") {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestEmbed_CyclesDigestBytes(t *testing.T) {
	vec := Embed("cyclic")
	// The 32-byte digest repeats every 32 positions across the 512 dims.
	for i := 32; i < EmbeddingDim; i++ {
		assert.Equal(t, vec[i%32], vec[i])
	}
}

func TestEmbed_NoCollisionsAcrossDistinctStrings(t *testing.T) {
	seen := make(map[[8]float64]string)
	for i := 0; i < 60; i++ {
		text := fmt.Sprintf("skill-%d", i)
		vec := Embed(text)

		var head [8]float64
		copy(head[:], vec[:8])
		prev, dup := seen[head]
		require.False(t, dup, "vectors for %q and %q collide", prev, text)
		seen[head] = text
	}
}
