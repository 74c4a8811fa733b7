package matching

import (
	"strings"

	"github.com/jonathan/opportunity-matcher/internal/types"
)

// Penalties holds the additive deductions applied when a hard eligibility
// constraint is not met. The values are deliberately moderate: hard
// constraints degrade the score rather than eliminating candidates outright,
// leaving true exclusion to the quality-threshold stage where it can be
// relaxed when too few candidates qualify.
type Penalties struct {
	Country  float64 `json:"country"`
	Level    float64 `json:"level"`
	Language float64 `json:"language"`
}

// DefaultPenalties returns the standard penalty values
func DefaultPenalties() Penalties {
	return Penalties{
		Country:  0.15,
		Level:    0.10,
		Language: 0.12,
	}
}

// EligibilityScore scores the opportunity's hard requirements against the
// candidate as additive penalties subtracted from 1.0, clamped to [0,1].
func EligibilityScore(cv *types.CandidateProfile, opp *types.OpportunityRecord, p Penalties) float64 {
	penalty := 0.0

	if len(opp.EligibleCountries) > 0 && !anyOverlapFold(cv.Countries, opp.EligibleCountries) {
		penalty += p.Country
	}

	if len(opp.EligibleLevels) > 0 && cv.Level != "" {
		match := false
		for _, l := range opp.EligibleLevels {
			if strings.EqualFold(string(l), string(cv.Level)) {
				match = true
				break
			}
		}
		if !match {
			penalty += p.Level
		}
	}

	if opp.Language != "" && !containsFold(cv.Languages, opp.Language) {
		penalty += p.Language
	}

	score := 1.0 - penalty
	if score < 0 {
		return 0
	}
	return score
}

// anyOverlapFold reports whether the two sets share any member, case-insensitively
func anyOverlapFold(a, b []string) bool {
	for _, x := range a {
		if containsFold(b, x) {
			return true
		}
	}
	return false
}

// containsFold reports whether list contains s, case-insensitively
func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
