package matching

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/opportunity-matcher/internal/types"
)

// enrichmentConcurrency caps outbound lookup fan-out during enrichment
const enrichmentConcurrency = 4

// Organization is display metadata resolved for an opportunity's organization key
type Organization struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// SkillResolver resolves canonical skill keys to display names
type SkillResolver interface {
	ResolveSkillNames(ctx context.Context, keys []string) ([]string, error)
}

// OrganizationResolver resolves an organization key to display metadata.
// A nil Organization with a nil error means the key is unknown.
type OrganizationResolver interface {
	ResolveOrganization(ctx context.Context, key string) (*Organization, error)
}

// EngineConfig configures a ranking engine. Zero values fall back to defaults;
// nil resolvers pass keys through unchanged, which is useful for offline runs
// and tests.
type EngineConfig struct {
	Weights       Weights
	Penalties     Penalties
	Workers       int // scoring concurrency, defaults to the CPU count
	Skills        SkillResolver
	Organizations OrganizationResolver
	Logger        *zap.Logger
	Now           func() time.Time
}

// Engine scores a candidate profile against a set of opportunity records and
// returns an ordered, filtered top-K list with an explainable breakdown.
// Scoring is pure per candidate-opportunity pair, so the scoring stage runs
// across a bounded worker pool; the only I/O happens in the late enrichment
// stage.
type Engine struct {
	weights   Weights
	penalties Penalties
	workers   int
	skills    SkillResolver
	orgs      OrganizationResolver
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine creates a ranking engine from the given configuration
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	if cfg.Penalties == (Penalties{}) {
		cfg.Penalties = DefaultPenalties()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		weights:   cfg.Weights,
		penalties: cfg.Penalties,
		workers:   cfg.Workers,
		skills:    cfg.Skills,
		orgs:      cfg.Organizations,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
}

// Match runs the full ranking pipeline for one candidate profile against the
// already coarse-filtered opportunity set: score, adjust, threshold, rank,
// enrich, finalize.
//
// A single opportunity's scoring failure is logged and the opportunity
// excluded; the run as a whole fails only on an invalid candidate profile or
// a cancelled context.
func (e *Engine) Match(ctx context.Context, cv *types.CandidateProfile, prefs *types.Preferences, filters *types.Filters, opportunities []types.OpportunityRecord) (*types.MatchResult, error) {
	if cv == nil || cv.Empty() {
		return nil, &InvalidInputError{Reason: "CV data required"}
	}
	if err := cv.Validate(); err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}
	if err := prefs.Validate(); err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}
	if err := filters.Validate(); err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}

	// The candidate vector is shared read-only by every worker.
	cvVec := Embed(CleanText(cv.EmbeddingText()))

	scored := make([]*types.ScoreBreakdown, len(opportunities))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range opportunities {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			opp := &opportunities[i]
			sb, err := e.scoreOne(cvVec, cv, opp, prefs)
			if err != nil {
				e.logger.Warn("dropping opportunity from run",
					zap.String("opportunity_id", opp.ID),
					zap.Error(err))
				return nil
			}
			scored[i] = sb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]types.ScoreBreakdown, 0, len(opportunities))
	for _, sb := range scored {
		if sb != nil {
			results = append(results, *sb)
		}
	}

	// Descending by score, ties broken by ID so runs are reproducible.
	sort.Slice(results, func(i, j int) bool {
		if results[i].MatchScore == results[j].MatchScore {
			return results[i].OpportunityID < results[j].OpportunityID
		}
		return results[i].MatchScore > results[j].MatchScore
	})

	topK := prefs.EffectiveTopK()
	quality := 0
	for _, r := range results {
		if r.MatchScore >= e.weights.QualityThreshold {
			quality++
		}
	}

	// The sorted slice puts every passing result in a prefix of length
	// `quality`. When fewer than topK pass and at least topK were scored,
	// the threshold is relaxed and the best topK are kept regardless of value.
	var kept []types.ScoreBreakdown
	if quality < topK && len(results) >= topK {
		kept = results[:topK]
	} else {
		kept = results[:min(quality, topK)]
	}

	enriched, err := e.enrich(ctx, kept)
	if err != nil {
		return nil, err
	}

	sum := 0.0
	for _, r := range enriched {
		sum += r.MatchScore
	}
	avg := 0.0
	if len(enriched) > 0 {
		avg = round4(sum / float64(len(enriched)))
	}

	e.logger.Info("ranking run finished",
		zap.Int("total_evaluated", len(opportunities)),
		zap.Int("quality_matches", quality),
		zap.Int("returned", len(enriched)),
		zap.Float64("average_score", avg))

	return &types.MatchResult{
		Matches: enriched,
		Metadata: types.RunMetadata{
			TotalEvaluated:      len(opportunities),
			TotalQualityMatches: quality,
			ReturnedMatches:     len(enriched),
			AverageScore:        avg,
			FiltersApplied:      filters,
		},
	}, nil
}

// scoreOne computes the full adjusted score for a single candidate-opportunity
// pair. It is pure: no I/O, no shared mutable state.
func (e *Engine) scoreOne(cvVec []float64, cv *types.CandidateProfile, opp *types.OpportunityRecord, prefs *types.Preferences) (*types.ScoreBreakdown, error) {
	oppVec := Embed(CleanText(opp.EmbeddingText()))
	if len(oppVec) != len(cvVec) {
		return nil, &ComputationError{
			OpportunityID: opp.ID,
			Err:           fmt.Errorf("vector dimension mismatch: %d vs %d", len(cvVec), len(oppVec)),
		}
	}

	// Cosine output is [-1,1]; rescaling to [0,1] happens once, here.
	semantic := (Cosine(cvVec, oppVec) + 1) / 2
	skills := OverlapScore(cv.Skills, opp.RequiredSkills, opp.OptionalSkills)
	hard := EligibilityScore(cv, opp, e.penalties)

	score := e.weights.Skills*skills + e.weights.Semantic*semantic + e.weights.Hard*hard

	if opp.PopularityScore > 0 {
		score += math.Min(popularityBonusCap, float64(opp.PopularityScore)/popularityReference*popularityBonusCap)
	}

	// Strong-skill candidates that fail soft eligibility get partial credit back.
	if skills > compensationSkillFloor && hard < compensationHardCeiling {
		score += (skills - compensationSkillFloor) * compensationFactor
	}

	if semantic > semanticExcellenceMin {
		score += semanticExcellenceBonus
	}

	score = adjustForSalary(score, prefs, opp)
	score = e.adjustForDeadline(score, opp)
	score = clamp01(score)

	e.logger.Debug("scored opportunity",
		zap.String("opportunity_id", opp.ID),
		zap.Float64("semantic", semantic),
		zap.Float64("skills", skills),
		zap.Float64("eligibility", hard),
		zap.Float64("final", score))

	return &types.ScoreBreakdown{
		OpportunityID: opp.ID,
		MatchScore:    round4(score),
		Breakdown: types.Breakdown{
			Semantic:    round4(semantic),
			Skills:      round4(skills),
			Eligibility: round4(hard),
		},
		Details: detailsFor(opp),
	}, nil
}

// adjustForSalary applies the tiered multiplicative salary adjustment: a
// penalty scaled by how far the opportunity's minimum falls below the
// preferred minimum, and a small boost when the maximum comfortably exceeds it.
func adjustForSalary(score float64, prefs *types.Preferences, opp *types.OpportunityRecord) float64 {
	if prefs == nil || prefs.MinSalary <= 0 {
		return score
	}
	want := prefs.MinSalary

	if opp.MinSalary != nil && *opp.MinSalary < want {
		gap := (want - *opp.MinSalary) / want
		switch {
		case gap > salaryGapLarge:
			score *= salaryPenaltyLarge
		case gap >= salaryGapModerate:
			score *= salaryPenaltyModerate
		default:
			score *= salaryPenaltySmall
		}
	}

	if opp.MaxSalary != nil && *opp.MaxSalary > want*salaryBoostHeadroom {
		score = math.Min(1.0, score*salaryBoost)
	}
	return score
}

// adjustForDeadline boosts opportunities whose deadline is within a week
func (e *Engine) adjustForDeadline(score float64, opp *types.OpportunityRecord) float64 {
	if opp.Deadline == nil {
		return score
	}
	days := opp.Deadline.Sub(e.now()).Hours() / 24
	if days > 0 && days <= deadlineUrgencyDays {
		score = math.Min(1.0, score*deadlineUrgencyBoost)
	}
	return score
}

// enrich resolves skill keys and organization keys to display names. A result
// whose organization cannot be resolved is a data-integrity drop, not an
// error. Lookups run concurrently with a small cap; the ranked order is
// preserved because enrichment never re-sorts.
func (e *Engine) enrich(ctx context.Context, results []types.ScoreBreakdown) ([]types.ScoreBreakdown, error) {
	keep := make([]bool, len(results))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(enrichmentConcurrency)
	for i := range results {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r := &results[i]

			if e.orgs != nil {
				org, err := e.orgs.ResolveOrganization(gCtx, r.Details.Organization)
				if err != nil || org == nil {
					e.logger.Warn("organization unresolved, dropping result",
						zap.String("opportunity_id", r.OpportunityID),
						zap.String("organization_key", r.Details.Organization),
						zap.Error(err))
					return nil
				}
				r.Details.Organization = org.Name
				r.Details.OrganizationLogo = org.LogoURL
			}

			if e.skills != nil {
				r.Details.RequiredSkills = e.resolveNames(gCtx, r.OpportunityID, r.Details.RequiredSkills)
				r.Details.OptionalSkills = e.resolveNames(gCtx, r.OpportunityID, r.Details.OptionalSkills)
			}

			keep[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched := make([]types.ScoreBreakdown, 0, len(results))
	for i, r := range results {
		if keep[i] {
			enriched = append(enriched, r)
		}
	}
	return enriched, nil
}

// resolveNames maps canonical skill keys to display names, falling back to the
// raw keys when the catalog is unavailable
func (e *Engine) resolveNames(ctx context.Context, opportunityID string, keys []string) []string {
	if len(keys) == 0 {
		return keys
	}
	names, err := e.skills.ResolveSkillNames(ctx, keys)
	if err != nil {
		e.logger.Warn("skill name resolution failed, keeping keys",
			zap.String("opportunity_id", opportunityID),
			zap.Error(err))
		return keys
	}
	return names
}

// detailsFor snapshots the opportunity fields the caller renders. Organization
// and skills carry raw keys here; enrichment replaces them with display names.
func detailsFor(opp *types.OpportunityRecord) types.MatchDetails {
	return types.MatchDetails{
		Title:             opp.Title,
		Type:              opp.Type,
		Organization:      opp.OrganizationKey,
		URL:               opp.URL,
		Description:       opp.Description,
		Language:          opp.Language,
		Location:          opp.Location,
		FieldOfStudy:      opp.FieldOfStudy,
		Modality:          opp.Modality,
		EligibleLevels:    opp.EligibleLevels,
		EligibleCountries: opp.EligibleCountries,
		RequiredSkills:    opp.RequiredSkills,
		OptionalSkills:    opp.OptionalSkills,
		Salary: types.SalaryDetails{
			Min:      opp.MinSalary,
			Max:      opp.MaxSalary,
			Currency: opp.Currency,
		},
		Popularity: opp.PopularityScore,
		Deadline:   opp.Deadline,
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
