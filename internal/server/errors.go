// Package server provides the HTTP REST API for the opportunity matcher.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/opportunity-matcher/internal/matching"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var invalidInput *matching.InvalidInputError
	var validation *ErrValidation
	switch {
	case errors.As(err, &invalidInput), errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
