package matching

// Weights holds the relative contribution of each score component and the
// quality threshold for a ranking run. Components are weighted 35% skills,
// 35% semantic similarity and 20% eligibility by default, leaving roughly 10%
// of headroom for bonuses before the final clamp.
type Weights struct {
	Skills           float64 `json:"skills"`
	Semantic         float64 `json:"semantic"`
	Hard             float64 `json:"hard"`
	QualityThreshold float64 `json:"quality_threshold"`
}

// DefaultWeights returns the standard component weights and threshold
func DefaultWeights() Weights {
	return Weights{
		Skills:           0.35,
		Semantic:         0.35,
		Hard:             0.20,
		QualityThreshold: 0.20,
	}
}

// Bonus and adjustment constants applied on top of the weighted base score
const (
	// popularity bonus: up to popularityBonusCap, full at popularityReference
	popularityBonusCap  = 0.08
	popularityReference = 500.0

	// compensation bonus: strong-skill candidates that fail soft eligibility
	compensationSkillFloor  = 0.8
	compensationHardCeiling = 0.5
	compensationFactor      = 0.15

	// flat bonus for exceptional semantic similarity
	semanticExcellenceMin   = 0.85
	semanticExcellenceBonus = 0.03

	// tiered multiplicative salary penalties by percentage gap below the
	// preferred minimum, and a small boost when the max comfortably exceeds it
	salaryGapLarge        = 0.5
	salaryGapModerate     = 0.3
	salaryPenaltyLarge    = 0.80
	salaryPenaltyModerate = 0.90
	salaryPenaltySmall    = 0.95
	salaryBoostHeadroom   = 1.5
	salaryBoost           = 1.05

	// urgency boost for deadlines within a week
	deadlineUrgencyDays  = 7
	deadlineUrgencyBoost = 1.03
)
