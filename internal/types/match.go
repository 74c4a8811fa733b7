//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Breakdown holds the per-component sub-scores backing a match score.
// Every component lies in [0,1], rounded to 4 decimal places.
type Breakdown struct {
	Semantic    float64 `json:"semantic"`
	Skills      float64 `json:"skills"`
	Eligibility float64 `json:"eligibility"`
}

// SalaryDetails groups the compensation fields for display
type SalaryDetails struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// MatchDetails carries the denormalized opportunity fields the caller renders,
// enriched with display names resolved from the skill catalog and organization store.
type MatchDetails struct {
	Title             string          `json:"title"`
	Type              OpportunityType `json:"type"`
	Organization      string          `json:"organization"`
	OrganizationLogo  string          `json:"organization_logo_url,omitempty"`
	URL               string          `json:"url,omitempty"`
	Description       string          `json:"description,omitempty"`
	Language          string          `json:"language,omitempty"`
	Location          string          `json:"location,omitempty"`
	FieldOfStudy      string          `json:"field_of_study,omitempty"`
	Modality          Modality        `json:"modality,omitempty"`
	EligibleLevels    []Level         `json:"eligible_levels,omitempty"`
	EligibleCountries []string        `json:"eligible_countries,omitempty"`
	RequiredSkills    []string        `json:"required_skills,omitempty"`
	OptionalSkills    []string        `json:"optional_skills,omitempty"`
	Salary            SalaryDetails   `json:"salary"`
	Popularity        int             `json:"popularity"`
	Deadline          *time.Time      `json:"deadline,omitempty"`
}

// ScoreBreakdown is one scored candidate-opportunity pair
type ScoreBreakdown struct {
	OpportunityID string       `json:"opportunity_id"`
	MatchScore    float64      `json:"match_score"`
	Breakdown     Breakdown    `json:"breakdown"`
	Details       MatchDetails `json:"details"`
}

// RunMetadata summarizes a single ranking run. It is computed once per run and
// never persisted; it exists for the response and for observability.
type RunMetadata struct {
	TotalEvaluated      int      `json:"total_evaluated"`
	TotalQualityMatches int      `json:"total_quality_matches"`
	ReturnedMatches     int      `json:"returned_matches"`
	AverageScore        float64  `json:"average_score"`
	FiltersApplied      *Filters `json:"filters_applied,omitempty"`
}

// MatchResult is the full output of one ranking run
type MatchResult struct {
	Matches  []ScoreBreakdown `json:"matches"`
	Metadata RunMetadata      `json:"metadata"`
}
