package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_Basic(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"lowercase passthrough", "golang backend", "golang backend"},
		{"uppercase folded", "Senior Data Engineer", "senior data engineer"},
		{"punctuation stripped", "C++ / SQL, and more!", "c sql and more"},
		{"whitespace collapsed", "  too   many\t\tspaces \n here ", "too many spaces here"},
		{"digits kept", "python3 since 2019", "python3 since 2019"},
		{"accents stripped", "ingeniería de software", "ingenier a de software"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_StripsHTML(t *testing.T) {
	input := `<p>Backend <strong>engineer</strong> role.</p><script>alert("x")</script>`
	got := CleanText(input)

	assert.Contains(t, got, "backend")
	assert.Contains(t, got, "engineer")
	assert.NotContains(t, got, "script")
	assert.NotContains(t, got, "alert")
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Some <b>description</b> with Mixed CASE and symbols #@!"
	assert.Equal(t, CleanText(input), CleanText(input))
}
