package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapScore_EmptyRequiredScoresFull(t *testing.T) {
	assert.Equal(t, 1.0, OverlapScore([]string{"python"}, nil, nil))
	assert.Equal(t, 1.0, OverlapScore(nil, nil, nil))
}

func TestOverlapScore_FullMatch(t *testing.T) {
	score := OverlapScore([]string{"python", "sql"}, []string{"python", "sql"}, nil)
	assert.Equal(t, 1.0, score)
}

func TestOverlapScore_HalfMatchBoundary(t *testing.T) {
	// One of two required skills: ratio 0.5 lands exactly on the curve knee.
	score := OverlapScore([]string{"a"}, []string{"a", "b"}, nil)
	assert.Equal(t, 0.7, score)
}

func TestOverlapScore_BelowHalfUsesSteepSegment(t *testing.T) {
	// 1 of 4 required: 0.25 * 1.4 = 0.35.
	score := OverlapScore([]string{"a"}, []string{"a", "b", "c", "d"}, nil)
	assert.InDelta(t, 0.35, score, 1e-9)
}

func TestOverlapScore_NoMatch(t *testing.T) {
	score := OverlapScore([]string{"cooking"}, []string{"python", "sql"}, nil)
	assert.Equal(t, 0.0, score)
}

func TestOverlapScore_CaseAndWhitespaceInsensitive(t *testing.T) {
	score := OverlapScore([]string{"  PYTHON ", "Sql"}, []string{"python", "sql"}, nil)
	assert.Equal(t, 1.0, score)
}

func TestOverlapScore_OptionalBonus(t *testing.T) {
	base := OverlapScore([]string{"a"}, []string{"a", "b"}, nil)

	// Half the optional set matched adds half the bonus cap.
	withBonus := OverlapScore([]string{"a", "x"}, []string{"a", "b"}, []string{"x", "y"})
	assert.InDelta(t, base+0.075, withBonus, 1e-9)

	// Full optional coverage adds the full cap.
	fullBonus := OverlapScore([]string{"a", "x", "y"}, []string{"a", "b"}, []string{"x", "y"})
	assert.InDelta(t, base+0.15, fullBonus, 1e-9)
}

func TestOverlapScore_CappedAtOne(t *testing.T) {
	score := OverlapScore([]string{"a", "b", "x"}, []string{"a", "b"}, []string{"x"})
	assert.Equal(t, 1.0, score)
}

func TestOverlapScore_MonotonicInMatchedRequired(t *testing.T) {
	required := []string{"a", "b", "c", "d", "e"}
	candidates := [][]string{
		{},
		{"a"},
		{"a", "b"},
		{"a", "b", "c"},
		{"a", "b", "c", "d"},
		{"a", "b", "c", "d", "e"},
	}

	prev := -1.0
	for _, skills := range candidates {
		score := OverlapScore(skills, required, nil)
		assert.GreaterOrEqual(t, score, prev,
			"score must not decrease as matched required count grows (skills=%v)", skills)
		prev = score
	}
}
