package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scheme-eligibility-engine/internal/engine"
	"scheme-eligibility-engine/internal/models"
)

func ageCriterion(minAge, maxAge *int) models.Criterion {
	return models.Criterion{
		Key:    "age",
		Kind:   models.CriterionAge,
		MinAge: minAge,
		MaxAge: maxAge,
	}
}

func TestEvaluateCriterion_AgeBoundsAreInclusive(t *testing.T) {
	criterion := ageCriterion(intPtr(18), intPtr(60))

	cases := []struct {
		age      int
		expected models.OutcomeStatus
	}{
		{17, models.StatusIneligible},
		{18, models.StatusEligible},
		{60, models.StatusEligible},
		{61, models.StatusIneligible},
	}

	for _, tc := range cases {
		outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{Age: intPtr(tc.age)})
		assert.Equal(t, tc.expected, outcome.Status, "age %d", tc.age)
	}
}

func TestEvaluateCriterion_AgeUnknown(t *testing.T) {
	outcome := engine.EvaluateCriterion(ageCriterion(intPtr(18), nil), engine.NormalizedProfile{})

	assert.Equal(t, models.StatusPartial, outcome.Status)
	assert.Equal(t, "Age could not be verified from your profile", outcome.Message)
	assert.Empty(t, outcome.UserValue)
}

func TestEvaluateCriterion_AgeLowerBoundOnly(t *testing.T) {
	criterion := ageCriterion(intPtr(60), nil)

	outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{Age: intPtr(75)})
	assert.Equal(t, models.StatusEligible, outcome.Status)
	assert.Equal(t, "60+", outcome.RequiredValue)
}

func TestEvaluateCriterion_GenderMatch(t *testing.T) {
	criterion := models.Criterion{
		Key:    "gender",
		Kind:   models.CriterionGender,
		Gender: models.GenderFemale,
	}

	outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{Gender: models.GenderFemale})
	assert.Equal(t, models.StatusEligible, outcome.Status)

	outcome = engine.EvaluateCriterion(criterion, engine.NormalizedProfile{Gender: models.GenderMale})
	assert.Equal(t, models.StatusIneligible, outcome.Status)
}

func TestEvaluateCriterion_GenderUnknown(t *testing.T) {
	criterion := models.Criterion{
		Key:    "gender",
		Kind:   models.CriterionGender,
		Gender: models.GenderFemale,
	}

	outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{Gender: models.GenderUnspecified})

	assert.Equal(t, models.StatusPartial, outcome.Status)
	assert.Equal(t, "Gender could not be verified from your profile", outcome.Message)
}

func TestEvaluateCriterion_IncomeCeilingIsInclusive(t *testing.T) {
	criterion := models.Criterion{
		Key:       "income",
		Kind:      models.CriterionIncome,
		MaxIncome: int64Ptr(300000),
	}

	outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{Income: int64Ptr(300000)})
	assert.Equal(t, models.StatusEligible, outcome.Status, "Income exactly at the ceiling qualifies")

	outcome = engine.EvaluateCriterion(criterion, engine.NormalizedProfile{Income: int64Ptr(300001)})
	assert.Equal(t, models.StatusIneligible, outcome.Status)
}

func TestEvaluateCriterion_IncomeUnknown(t *testing.T) {
	criterion := models.Criterion{
		Key:       "income",
		Kind:      models.CriterionIncome,
		MaxIncome: int64Ptr(300000),
	}

	outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{})

	assert.Equal(t, models.StatusPartial, outcome.Status)
	assert.Equal(t, "Annual income could not be verified from your profile", outcome.Message)
}

func TestEvaluateCriterion_OccupationCaseInsensitive(t *testing.T) {
	criterion := models.Criterion{
		Key:         "occupation",
		Kind:        models.CriterionOccupation,
		Occupations: []string{"Farmer", "Agricultural Laborer"},
	}

	outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{Occupation: "farmer"})
	assert.Equal(t, models.StatusEligible, outcome.Status)

	outcome = engine.EvaluateCriterion(criterion, engine.NormalizedProfile{Occupation: "teacher"})
	assert.Equal(t, models.StatusIneligible, outcome.Status)
}

func TestEvaluateCriterion_OccupationUnknown(t *testing.T) {
	criterion := models.Criterion{
		Key:         "occupation",
		Kind:        models.CriterionOccupation,
		Occupations: []string{"farmer"},
	}

	outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{})

	assert.Equal(t, models.StatusPartial, outcome.Status)
	assert.Equal(t, "Occupation could not be verified from your profile", outcome.Message)
}

func TestEvaluateCriterion_CustomIsAlwaysPartial(t *testing.T) {
	text := "Must hold a valid ration card"
	criterion := models.Criterion{
		Key:  "custom_1",
		Kind: models.CriterionCustom,
		Text: text,
	}

	outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{
		Age:        intPtr(30),
		Gender:     models.GenderFemale,
		Income:     int64Ptr(100000),
		Occupation: "farmer",
	})

	assert.Equal(t, models.StatusPartial, outcome.Status, "Custom criteria cannot be mechanically verified")
	assert.Equal(t, text, outcome.Message, "The raw criteria text must surface as the message")
}

func TestEvaluateCriterion_UnknownKindDegrades(t *testing.T) {
	criterion := models.Criterion{
		Key:  "residency",
		Kind: models.CriterionKind("residency"),
	}

	outcome := engine.EvaluateCriterion(criterion, engine.NormalizedProfile{})

	assert.Equal(t, models.StatusPartial, outcome.Status)
}
