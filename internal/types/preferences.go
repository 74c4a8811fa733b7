//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// DefaultTopK is the number of results returned when the caller does not ask for a specific count
const DefaultTopK = 5

// Preferences captures what the candidate is looking for. All fields are optional.
type Preferences struct {
	Modality  Modality `json:"modality,omitempty" validate:"omitempty,oneof=REMOTE HYBRID ON_SITE"`
	MinSalary float64  `json:"min_salary,omitempty" validate:"gte=0"`
	Currency  string   `json:"currency,omitempty"`
	TopK      int      `json:"top_k,omitempty" validate:"gte=0"`
}

// EffectiveTopK returns the requested result count, defaulting when unset
func (p *Preferences) EffectiveTopK() int {
	if p == nil || p.TopK <= 0 {
		return DefaultTopK
	}
	return p.TopK
}

// Validate checks that enum fields carry recognized values
func (p *Preferences) Validate() error {
	if p == nil {
		return nil
	}
	if !p.Modality.Valid() {
		return fmt.Errorf("unrecognized modality %q (valid: REMOTE, HYBRID, ON_SITE)", p.Modality)
	}
	if p.TopK < 0 {
		return fmt.Errorf("top_k must be positive, got %d", p.TopK)
	}
	if p.MinSalary < 0 {
		return fmt.Errorf("min_salary must be non-negative, got %v", p.MinSalary)
	}
	return nil
}

// Filters captures operational filters applied when loading the candidate
// set. Limit and Offset page through the stored records; zero means unpaged.
type Filters struct {
	ExcludeExpired bool              `json:"exclude_expired,omitempty"`
	Types          []OpportunityType `json:"types,omitempty"`
	Limit          int               `json:"limit,omitempty" validate:"gte=0"`
	Offset         int               `json:"offset,omitempty" validate:"gte=0"`
}

// Validate checks that enum fields carry recognized values
func (f *Filters) Validate() error {
	if f == nil {
		return nil
	}
	for _, t := range f.Types {
		if !t.Valid() {
			return fmt.Errorf("unrecognized type %q (valid: %s)", t, joinTypes(ValidOpportunityTypes))
		}
	}
	if f.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", f.Limit)
	}
	if f.Offset < 0 {
		return fmt.Errorf("offset must be non-negative, got %d", f.Offset)
	}
	return nil
}
