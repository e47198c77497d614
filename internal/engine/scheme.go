package engine

import (
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"scheme-eligibility-engine/internal/models"
	"scheme-eligibility-engine/internal/utils"
)

// ScorePolicy controls how partial outcomes enter the match score.
type ScorePolicy int

const (
	// ScorePolicyExcludePartial leaves partial outcomes out of both the
	// numerator and the denominator, so unknown data neither inflates nor
	// deflates confidence. This is the default.
	ScorePolicyExcludePartial ScorePolicy = iota

	// ScorePolicyCountPartial counts partial outcomes in the denominator
	// as unmet, producing a more conservative score.
	ScorePolicyCountPartial
)

// Evaluator evaluates user profiles against schemes. It is safe for
// concurrent use: every call operates only on its arguments.
type Evaluator struct {
	policy ScorePolicy
	now    func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithScorePolicy overrides the default partial-outcome score policy.
func WithScorePolicy(policy ScorePolicy) Option {
	return func(e *Evaluator) { e.policy = policy }
}

// WithClock replaces the evaluation-time clock, used to derive age from
// date of birth deterministically in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// New creates a new evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		policy: ScorePolicyExcludePartial,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvaluateScheme produces the full per-scheme verdict for one profile:
// tri-state field outcomes, a 0-100 match score, classified reasons and
// remediation recommendations. It never returns an error; a malformed
// scheme configuration degrades to a single synthetic ineligible outcome
// so one broken scheme cannot prevent others from being evaluated.
func (e *Evaluator) EvaluateScheme(profile models.UserProfile, scheme models.Scheme) models.EligibilityResult {
	result := models.EligibilityResult{
		SchemeID:         scheme.ID,
		SchemeName:       scheme.Name,
		Category:         scheme.Category,
		MatchingCriteria: []string{},
		MissingCriteria:  []string{},
		Breakdown:        map[string]models.FieldOutcome{},
	}

	var outcomes []models.FieldOutcome

	if err := scheme.Criteria.Validate(); err != nil {
		utils.GetLogger().Warn("Scheme has invalid criteria configuration",
			zap.String("scheme_id", scheme.ID),
			zap.Error(err),
		)
		outcomes = []models.FieldOutcome{{
			CriterionKey: "criteria",
			Status:       models.StatusIneligible,
			Message:      "invalid criteria configuration",
		}}
	} else {
		normalized := Normalize(profile, e.now())
		for _, criterion := range scheme.Criteria.Criteria() {
			outcomes = append(outcomes, EvaluateCriterion(criterion, normalized))
		}
	}

	var eligibleCount, evaluatedCount int

	for _, outcome := range outcomes {
		result.Breakdown[outcome.CriterionKey] = outcome

		switch outcome.Status {
		case models.StatusEligible:
			result.MatchingCriteria = append(result.MatchingCriteria, outcome.CriterionKey)
			eligibleCount++
			evaluatedCount++
		case models.StatusIneligible:
			result.MissingCriteria = append(result.MissingCriteria, outcome.CriterionKey)
			evaluatedCount++
		case models.StatusPartial:
			if e.policy == ScorePolicyCountPartial && !isCustomKey(outcome.CriterionKey) {
				evaluatedCount++
			}
		}
	}

	result.IsEligible = len(result.MissingCriteria) == 0
	result.EligibilityScore = score(eligibleCount, evaluatedCount)
	result.Reasons = Classify(outcomes)

	if !result.IsEligible {
		result.Recommendations = Recommend(outcomes)
	}

	return result
}

// score computes the 0-100 two-decimal match score. A scheme with no
// mechanical criteria to evaluate scores 100.
func score(eligible, evaluated int) float64 {
	if evaluated == 0 {
		return 100
	}
	raw := 100 * float64(eligible) / float64(evaluated)
	return math.Round(raw*100) / 100
}

// isCustomKey reports whether a criterion key belongs to a custom
// (textual) criterion, which is never scored.
func isCustomKey(key string) bool {
	return strings.HasPrefix(key, "custom")
}
