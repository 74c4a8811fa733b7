//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// OpportunityType represents the kind of opportunity being ranked
type OpportunityType string

// Recognized opportunity types
const (
	TypeScholarship     OpportunityType = "SCHOLARSHIP"
	TypeInternship      OpportunityType = "INTERNSHIP"
	TypeExchangeProgram OpportunityType = "EXCHANGE_PROGRAM"
	TypeEmployment      OpportunityType = "EMPLOYMENT"
)

// ValidOpportunityTypes lists every recognized OpportunityType value
var ValidOpportunityTypes = []OpportunityType{
	TypeScholarship, TypeInternship, TypeExchangeProgram, TypeEmployment,
}

// Valid reports whether the type is empty or one of the recognized values
func (t OpportunityType) Valid() bool {
	if t == "" {
		return true
	}
	for _, v := range ValidOpportunityTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Modality represents where the opportunity takes place
type Modality string

// Recognized modalities
const (
	ModalityRemote Modality = "REMOTE"
	ModalityHybrid Modality = "HYBRID"
	ModalityOnSite Modality = "ON_SITE"
)

// ValidModalities lists every recognized Modality value
var ValidModalities = []Modality{ModalityRemote, ModalityHybrid, ModalityOnSite}

// Valid reports whether the modality is empty or one of the recognized values
func (m Modality) Valid() bool {
	if m == "" {
		return true
	}
	for _, v := range ValidModalities {
		if m == v {
			return true
		}
	}
	return false
}

// OpportunityRecord represents a job, scholarship, internship or program record
// as returned by the opportunity store. It is a read-only snapshot for the
// duration of a ranking run.
type OpportunityRecord struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	OrganizationKey   string          `json:"organization_key"`
	URL               string          `json:"url,omitempty"`
	Type              OpportunityType `json:"type"`
	Modality          Modality        `json:"modality,omitempty"`
	Language          string          `json:"language,omitempty"`
	Location          string          `json:"location,omitempty"`
	FieldOfStudy      string          `json:"field_of_study,omitempty"`
	RequiredSkills    []string        `json:"required_skills,omitempty"`
	OptionalSkills    []string        `json:"optional_skills,omitempty"`
	EligibleLevels    []Level         `json:"eligible_levels,omitempty"`
	EligibleCountries []string        `json:"eligible_countries,omitempty"`
	MinSalary         *float64        `json:"min_salary,omitempty"`
	MaxSalary         *float64        `json:"max_salary,omitempty"`
	Currency          string          `json:"currency,omitempty"`
	Deadline          *time.Time      `json:"deadline,omitempty"`
	PopularityScore   int             `json:"popularity_score"`
}

// EmbeddingText builds the text fed to the pseudo-embedder for this opportunity.
// Title, description and required skills are concatenated; the field of study and
// type are duplicated to bias the hash-text distribution toward them.
func (o *OpportunityRecord) EmbeddingText() string {
	parts := []string{o.Title, o.Description, strings.Join(o.RequiredSkills, " ")}
	if o.FieldOfStudy != "" {
		parts = append(parts, o.FieldOfStudy, o.FieldOfStudy)
	}
	if o.Type != "" {
		parts = append(parts, string(o.Type), string(o.Type))
	}
	return strings.Join(parts, " ")
}

func joinTypes(types []OpportunityType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
