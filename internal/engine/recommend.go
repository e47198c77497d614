package engine

import (
	"fmt"
	"strconv"

	"scheme-eligibility-engine/internal/models"
)

// Recommend derives one actionable suggestion per ineligible outcome.
// Partial and eligible outcomes produce nothing; a fully eligible result
// therefore gets an empty list.
func Recommend(outcomes []models.FieldOutcome) []string {
	var recommendations []string

	for _, outcome := range outcomes {
		if outcome.Status != models.StatusIneligible {
			continue
		}
		recommendations = append(recommendations, recommendFor(outcome))
	}

	return recommendations
}

func recommendFor(outcome models.FieldOutcome) string {
	switch models.CriterionKind(outcome.CriterionKey) {
	case models.CriterionAge:
		return fmt.Sprintf("Only applicants aged %s can apply for this scheme.", outcome.RequiredValue)

	case models.CriterionGender:
		return fmt.Sprintf("This scheme is reserved for %s applicants.", outcome.RequiredValue)

	case models.CriterionIncome:
		return incomeRecommendation(outcome)

	case models.CriterionOccupation:
		return fmt.Sprintf("This scheme is limited to these occupations: %s.", outcome.RequiredValue)
	}

	return "This scheme's eligibility rules are misconfigured; contact the scheme helpline for manual verification."
}

// incomeRecommendation frames the suggestion around the income gap when
// both sides are numeric.
func incomeRecommendation(outcome models.FieldOutcome) string {
	income, errU := strconv.ParseInt(outcome.UserValue, 10, 64)
	ceiling, errR := strconv.ParseInt(outcome.RequiredValue, 10, 64)
	if errU == nil && errR == nil && income > ceiling {
		return fmt.Sprintf(
			"Your declared annual income is ₹%d above this scheme's ₹%d ceiling; check schemes without an income cap or update your income details if they are out of date.",
			income-ceiling, ceiling)
	}
	return fmt.Sprintf("Annual income must not exceed ₹%s to qualify for this scheme.", outcome.RequiredValue)
}
