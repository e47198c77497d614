package engine

import (
	"scheme-eligibility-engine/internal/models"
)

// Classify partitions field outcomes into eligible, ineligible and warning
// reason lists. It is a pure partition: messages keep the criterion
// evaluation order, so identical input always yields identical output.
func Classify(outcomes []models.FieldOutcome) models.Reasons {
	reasons := models.Reasons{
		Eligible:   []string{},
		Ineligible: []string{},
		Warnings:   []string{},
	}

	for _, outcome := range outcomes {
		switch outcome.Status {
		case models.StatusEligible:
			reasons.Eligible = append(reasons.Eligible, outcome.Message)
		case models.StatusIneligible:
			reasons.Ineligible = append(reasons.Ineligible, outcome.Message)
		case models.StatusPartial:
			reasons.Warnings = append(reasons.Warnings, outcome.Message)
		}
	}

	return reasons
}
