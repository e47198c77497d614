// Package models_test contains tests for the scheme data model
package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-eligibility-engine/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestCriteria_ExpansionOrder(t *testing.T) {
	criteria := models.EligibilityCriteria{
		MinAge:         intPtr(18),
		MaxAge:         intPtr(60),
		Gender:         models.GenderFemale,
		MaxIncome:      int64Ptr(300000),
		Occupations:    []string{"farmer"},
		CustomCriteria: []string{"Must hold a BPL card", "Must reside in a rural area"},
	}

	expanded := criteria.Criteria()

	require.Len(t, expanded, 6)
	assert.Equal(t, "age", expanded[0].Key)
	assert.Equal(t, "gender", expanded[1].Key)
	assert.Equal(t, "income", expanded[2].Key)
	assert.Equal(t, "occupation", expanded[3].Key)
	assert.Equal(t, "custom_1", expanded[4].Key)
	assert.Equal(t, "custom_2", expanded[5].Key)
}

func TestCriteria_AbsenceIsSilence(t *testing.T) {
	criteria := models.EligibilityCriteria{}

	assert.Empty(t, criteria.Criteria(), "A scheme without rules declares no criteria")
}

func TestCriteria_GenderAllIsNoRestriction(t *testing.T) {
	for _, g := range []models.Gender{models.GenderAll, "ALL", " all ", "any"} {
		criteria := models.EligibilityCriteria{Gender: g}

		assert.Empty(t, criteria.Criteria(), "gender %q", g)
	}
}

func TestCriteria_GenderIsCanonicalized(t *testing.T) {
	criteria := models.EligibilityCriteria{Gender: "Female"}

	expanded := criteria.Criteria()

	require.Len(t, expanded, 1)
	assert.Equal(t, models.GenderFemale, expanded[0].Gender)
}

func TestCriteriaValidate_UnrecognizedGender(t *testing.T) {
	criteria := models.EligibilityCriteria{Gender: "xyz"}

	assert.ErrorIs(t, criteria.Validate(), models.ErrInvalidGender)

	criteria = models.EligibilityCriteria{Gender: "Male"}

	assert.NoError(t, criteria.Validate())
}

func TestCriteria_PartialBoundsStillExpand(t *testing.T) {
	criteria := models.EligibilityCriteria{MaxAge: intPtr(35)}

	expanded := criteria.Criteria()

	require.Len(t, expanded, 1)
	assert.Equal(t, models.CriterionAge, expanded[0].Kind)
	assert.Nil(t, expanded[0].MinAge)
	require.NotNil(t, expanded[0].MaxAge)
	assert.Equal(t, 35, *expanded[0].MaxAge)
}

func TestCriteria_BlankCustomCriteriaAreSkipped(t *testing.T) {
	criteria := models.EligibilityCriteria{
		CustomCriteria: []string{"Must be a first-time applicant", "   ", "Must own no other house"},
	}

	expanded := criteria.Criteria()

	// Keys track the original position so stored criteria keep stable keys.
	require.Len(t, expanded, 2)
	assert.Equal(t, "custom_1", expanded[0].Key)
	assert.Equal(t, "custom_3", expanded[1].Key)
}

func TestCriteriaValidate_AgeBoundsInverted(t *testing.T) {
	criteria := models.EligibilityCriteria{
		MinAge: intPtr(60),
		MaxAge: intPtr(18),
	}

	assert.ErrorIs(t, criteria.Validate(), models.ErrInvalidAgeBounds)
}

func TestCriteriaValidate_NegativeIncomeCeiling(t *testing.T) {
	criteria := models.EligibilityCriteria{
		MaxIncome: int64Ptr(-1),
	}

	assert.ErrorIs(t, criteria.Validate(), models.ErrInvalidIncomeCeiling)
}

func TestCriteriaValidate_EqualBoundsAreValid(t *testing.T) {
	criteria := models.EligibilityCriteria{
		MinAge: intPtr(18),
		MaxAge: intPtr(18),
	}

	assert.NoError(t, criteria.Validate())
}
