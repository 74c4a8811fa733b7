// Package types provides type definitions for structured data used throughout the opportunity-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Level represents a candidate's experience or academic level
type Level string

// Recognized experience and academic levels
const (
	LevelIntern    Level = "INTERN"
	LevelJunior    Level = "JUNIOR"
	LevelMid       Level = "MID"
	LevelSenior    Level = "SENIOR"
	LevelLead      Level = "LEAD"
	LevelExecutive Level = "EXECUTIVE"
	LevelGraduate  Level = "GRADUATE"
	LevelBachelor  Level = "BACHELOR"
	LevelLicense   Level = "LICENSE"
	LevelMaster    Level = "MASTER"
	LevelPhD       Level = "PHD"
	LevelPostdoc   Level = "POSTDOC"
)

// ValidLevels lists every recognized Level value, used in validation error messages
var ValidLevels = []Level{
	LevelIntern, LevelJunior, LevelMid, LevelSenior, LevelLead, LevelExecutive,
	LevelGraduate, LevelBachelor, LevelLicense, LevelMaster, LevelPhD, LevelPostdoc,
}

// Valid reports whether the level is empty or one of the recognized values
func (l Level) Valid() bool {
	if l == "" {
		return true
	}
	for _, v := range ValidLevels {
		if l == v {
			return true
		}
	}
	return false
}

// CandidateProfile represents the parsed CV analysis being matched against opportunities.
// It is immutable for the duration of a scoring run; the caller supplies a fresh copy per request.
type CandidateProfile struct {
	Skills         []string        `json:"skills"`
	Level          Level           `json:"level,omitempty"`
	Countries      []string        `json:"countries,omitempty"`
	Languages      []string        `json:"languages,omitempty"`
	Location       string          `json:"location,omitempty"`
	Type           OpportunityType `json:"type,omitempty"`
	SummaryText    string          `json:"summary,omitempty"`
	ExperienceText string          `json:"experience_text,omitempty"`
}

// Empty reports whether the profile carries no usable signal: no skills and no free text.
// An empty profile must be rejected before scoring begins.
func (p *CandidateProfile) Empty() bool {
	for _, s := range p.Skills {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return strings.TrimSpace(p.SummaryText) == "" && strings.TrimSpace(p.ExperienceText) == ""
}

// EmbeddingText builds the text fed to the pseudo-embedder for this profile:
// summary, experience narrative and the raw skill list concatenated.
func (p *CandidateProfile) EmbeddingText() string {
	return strings.Join([]string{p.SummaryText, p.ExperienceText, strings.Join(p.Skills, " ")}, " ")
}

// Validate checks that enum fields carry recognized values
func (p *CandidateProfile) Validate() error {
	if !p.Level.Valid() {
		return fmt.Errorf("unrecognized level %q (valid: %s)", p.Level, joinLevels(ValidLevels))
	}
	if !p.Type.Valid() {
		return fmt.Errorf("unrecognized type %q (valid: %s)", p.Type, joinTypes(ValidOpportunityTypes))
	}
	return nil
}

func joinLevels(levels []Level) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
