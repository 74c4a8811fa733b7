package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/opportunity-matcher/internal/matching"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid input", &matching.InvalidInputError{Reason: "CV data required"}, http.StatusBadRequest},
		{"wrapped invalid input", fmt.Errorf("match: %w", &matching.InvalidInputError{Reason: "x"}), http.StatusBadRequest},
		{"validation", &ErrValidation{Message: "bad field"}, http.StatusBadRequest},
		{"unknown", errors.New("db gone"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
