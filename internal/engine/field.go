package engine

import (
	"fmt"
	"strconv"
	"strings"

	"scheme-eligibility-engine/internal/models"
)

// EvaluateCriterion evaluates one structurally present criterion against a
// normalized profile and returns a tri-state outcome. Custom criteria are
// always partial: they cannot be mechanically verified.
func EvaluateCriterion(c models.Criterion, p NormalizedProfile) models.FieldOutcome {
	switch c.Kind {
	case models.CriterionAge:
		return evaluateAge(c, p)
	case models.CriterionGender:
		return evaluateGender(c, p)
	case models.CriterionIncome:
		return evaluateIncome(c, p)
	case models.CriterionOccupation:
		return evaluateOccupation(c, p)
	case models.CriterionCustom:
		return models.FieldOutcome{
			CriterionKey:  c.Key,
			Status:        models.StatusPartial,
			Message:       c.Text,
			RequiredValue: c.Text,
		}
	}

	// Unknown criterion kinds degrade to an unverifiable outcome rather
	// than panicking past the engine boundary.
	return models.FieldOutcome{
		CriterionKey: c.Key,
		Status:       models.StatusPartial,
		Message:      fmt.Sprintf("Criterion %q could not be verified", c.Key),
	}
}

func evaluateAge(c models.Criterion, p NormalizedProfile) models.FieldOutcome {
	outcome := models.FieldOutcome{
		CriterionKey:  c.Key,
		RequiredValue: formatAgeRange(c.MinAge, c.MaxAge),
	}

	if p.Age == nil {
		outcome.Status = models.StatusPartial
		outcome.Message = "Age could not be verified from your profile"
		return outcome
	}

	age := *p.Age
	outcome.UserValue = strconv.Itoa(age)

	switch {
	case c.MinAge != nil && age < *c.MinAge:
		outcome.Status = models.StatusIneligible
		outcome.Message = fmt.Sprintf("Age %d is below the minimum age of %d", age, *c.MinAge)
	case c.MaxAge != nil && age > *c.MaxAge:
		outcome.Status = models.StatusIneligible
		outcome.Message = fmt.Sprintf("Age %d is above the maximum age of %d", age, *c.MaxAge)
	default:
		outcome.Status = models.StatusEligible
		outcome.Message = fmt.Sprintf("Age %d meets the age requirement (%s)", age, outcome.RequiredValue)
	}

	return outcome
}

func evaluateGender(c models.Criterion, p NormalizedProfile) models.FieldOutcome {
	outcome := models.FieldOutcome{
		CriterionKey:  c.Key,
		RequiredValue: string(c.Gender),
	}

	if !p.Gender.IsKnown() {
		outcome.Status = models.StatusPartial
		outcome.Message = "Gender could not be verified from your profile"
		return outcome
	}

	outcome.UserValue = string(p.Gender)

	if p.Gender == c.Gender {
		outcome.Status = models.StatusEligible
		outcome.Message = "Gender requirement met"
	} else {
		outcome.Status = models.StatusIneligible
		outcome.Message = fmt.Sprintf("This scheme is open to %s applicants only", c.Gender)
	}

	return outcome
}

func evaluateIncome(c models.Criterion, p NormalizedProfile) models.FieldOutcome {
	ceiling := *c.MaxIncome
	outcome := models.FieldOutcome{
		CriterionKey:  c.Key,
		RequiredValue: strconv.FormatInt(ceiling, 10),
	}

	if p.Income == nil {
		outcome.Status = models.StatusPartial
		outcome.Message = "Annual income could not be verified from your profile"
		return outcome
	}

	income := *p.Income
	outcome.UserValue = strconv.FormatInt(income, 10)

	if income <= ceiling {
		outcome.Status = models.StatusEligible
		outcome.Message = fmt.Sprintf("Annual income ₹%d is within the ₹%d ceiling", income, ceiling)
	} else {
		outcome.Status = models.StatusIneligible
		outcome.Message = fmt.Sprintf("Annual income ₹%d exceeds the ₹%d ceiling", income, ceiling)
	}

	return outcome
}

func evaluateOccupation(c models.Criterion, p NormalizedProfile) models.FieldOutcome {
	accepted := make([]string, 0, len(c.Occupations))
	for _, occ := range c.Occupations {
		accepted = append(accepted, strings.ToLower(strings.TrimSpace(occ)))
	}

	outcome := models.FieldOutcome{
		CriterionKey:  c.Key,
		RequiredValue: strings.Join(accepted, ", "),
	}

	if p.Occupation == "" {
		outcome.Status = models.StatusPartial
		outcome.Message = "Occupation could not be verified from your profile"
		return outcome
	}

	outcome.UserValue = p.Occupation

	for _, occ := range accepted {
		if occ == p.Occupation {
			outcome.Status = models.StatusEligible
			outcome.Message = fmt.Sprintf("Occupation %q is accepted by this scheme", p.Occupation)
			return outcome
		}
	}

	outcome.Status = models.StatusIneligible
	outcome.Message = fmt.Sprintf("Occupation %q is not among the accepted occupations", p.Occupation)
	return outcome
}

// formatAgeRange renders inclusive age bounds for display: "18-60",
// "18+" or "up to 60".
func formatAgeRange(minAge, maxAge *int) string {
	switch {
	case minAge != nil && maxAge != nil:
		return fmt.Sprintf("%d-%d", *minAge, *maxAge)
	case minAge != nil:
		return fmt.Sprintf("%d+", *minAge)
	case maxAge != nil:
		return fmt.Sprintf("up to %d", *maxAge)
	}
	return ""
}
