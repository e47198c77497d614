// Package models defines the data structures for the scheme eligibility engine.
package models

// OutcomeStatus is the tri-state result of evaluating one criterion.
type OutcomeStatus string

const (
	StatusEligible   OutcomeStatus = "eligible"
	StatusIneligible OutcomeStatus = "ineligible"

	// StatusPartial marks an outcome that can be neither confirmed nor
	// denied: custom criteria and criteria checked against unknown
	// profile data. Partial outcomes never block eligibility.
	StatusPartial OutcomeStatus = "partial"
)

// FieldOutcome is the result of evaluating one criterion against a profile.
type FieldOutcome struct {
	CriterionKey  string        `json:"criterion_key"`
	Status        OutcomeStatus `json:"status"`
	Message       string        `json:"message"`
	UserValue     string        `json:"user_value,omitempty"`
	RequiredValue string        `json:"required_value,omitempty"`
}

// Reasons partitions outcome messages by status, preserving evaluation order.
type Reasons struct {
	Eligible   []string `json:"eligible"`
	Ineligible []string `json:"ineligible"`
	Warnings   []string `json:"warnings"`
}

// EligibilityResult is the per-scheme aggregate verdict returned to the
// presentation layer. Values are immutable once returned and safe to share
// across concurrent renders.
type EligibilityResult struct {
	SchemeID         string                  `json:"scheme_id"`
	SchemeName       string                  `json:"scheme_name"`
	Category         string                  `json:"category,omitempty"`
	IsEligible       bool                    `json:"is_eligible"`
	EligibilityScore float64                 `json:"eligibility_score"`
	MatchingCriteria []string                `json:"matching_criteria"`
	MissingCriteria  []string                `json:"missing_criteria"`
	Reasons          Reasons                 `json:"reasons"`
	Breakdown        map[string]FieldOutcome `json:"eligibility_breakdown"`
	Recommendations  []string                `json:"recommendations,omitempty"`
}

// RankFilterKind selects which results a ranking call returns.
type RankFilterKind string

const (
	FilterAll        RankFilterKind = "all"
	FilterEligible   RankFilterKind = "eligible"
	FilterIneligible RankFilterKind = "ineligible"
	FilterMinScore   RankFilterKind = "min_score"
)

// IsValid checks if the filter kind is known.
func (k RankFilterKind) IsValid() bool {
	switch k {
	case FilterAll, FilterEligible, FilterIneligible, FilterMinScore:
		return true
	}
	return false
}

// RankFilter describes result filtering for a ranking call. MinScore is
// only consulted when Kind is FilterMinScore.
type RankFilter struct {
	Kind     RankFilterKind `json:"kind"`
	MinScore float64        `json:"min_score,omitempty"`
}

// RankSort selects the ordering of ranked results. Ties are always broken
// by original catalog order.
type RankSort string

const (
	SortScoreDesc RankSort = "score_desc"
	SortName      RankSort = "name"
	SortCategory  RankSort = "category"
)

// IsValid checks if the sort order is known.
func (s RankSort) IsValid() bool {
	switch s {
	case SortScoreDesc, SortName, SortCategory:
		return true
	}
	return false
}
