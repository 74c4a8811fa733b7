package matching

import (
	"math"
	"strings"
)

// optionalBonusCap limits how much optional-skill coverage can add on top of
// the required-skill component
const optionalBonusCap = 0.15

// OverlapScore fuzzy-matches candidate skills against the required and
// optional skill sets of an opportunity, returning a score in [0,1].
//
// The required component uses a soft piecewise-linear curve: matching half the
// required skills already earns 0.7, so a candidate missing one of two
// required skills is not scored near zero. An empty required set scores 1.0.
// Optional skills add a bonus of up to optionalBonusCap, proportional to
// coverage.
func OverlapScore(candidateSkills, required, optional []string) float64 {
	have := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		have[skillKey(s)] = true
	}

	reqScore := 1.0
	if len(required) > 0 {
		matched := 0
		for _, s := range required {
			if have[skillKey(s)] {
				matched++
			}
		}
		ratio := float64(matched) / float64(len(required))
		if ratio >= 0.5 {
			reqScore = 0.7 + (ratio-0.5)*0.6 // [0.5,1.0] -> [0.7,1.0]
		} else {
			reqScore = ratio * 1.4 // [0,0.5) -> [0,0.7)
		}
	}

	bonus := 0.0
	if len(optional) > 0 {
		matched := 0
		for _, s := range optional {
			if have[skillKey(s)] {
				matched++
			}
		}
		bonus = math.Min(optionalBonusCap, float64(matched)/float64(len(optional))*optionalBonusCap)
	}

	return math.Min(1.0, reqScore+bonus)
}

// skillKey lowercases and trims a skill for comparison. Full canonicalization
// happens upstream when records are ingested into the catalog.
func skillKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
