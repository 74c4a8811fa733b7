package matching

import "fmt"

// InvalidInputError indicates the whole run was rejected before scoring began,
// e.g. a missing candidate profile or an unrecognized enum value.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// ComputationError indicates an unexpected scoring failure for a single
// opportunity. The offending opportunity is dropped and the run continues.
type ComputationError struct {
	OpportunityID string
	Err           error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("scoring opportunity %s: %v", e.OpportunityID, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
